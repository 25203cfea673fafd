// Package sched implements the data-dependency scheduler: Actions with
// declared read/write ports, and the two Scheduler variants (DDG and User)
// that order them into a deterministic run sequence.
package sched

import (
	"github.com/rocstar-hpc/cmoc/cmocerr"
	"github.com/rocstar-hpc/cmoc/registry"
)

// Direction is the role a Port plays with respect to its dataitem.
type Direction int

const (
	In Direction = iota
	Out
	InOut
)

func (d Direction) String() string {
	switch d {
	case In:
		return "IN"
	case Out:
		return "OUT"
	case InOut:
		return "INOUT"
	default:
		return "?"
	}
}

func (d Direction) reads() bool  { return d == In || d == InOut }
func (d Direction) writes() bool { return d == Out || d == InOut }

// Port is one (attr, idx, direction) declaration carried by an Action. The
// port list is immutable after construction.
type Port struct {
	Attr string
	Idx  int
	Dir  Direction
}

// Action is the unit of scheduled work. Declare walks the action's ports
// and tells the scheduler which attributes it reads and writes; Init/Run/
// Finalize drive its lifecycle. Run must not mutate the action's ports.
type Action interface {
	Name() string
	Declare(s *Scheduler) error
	Init(t float64) error
	Run(t, dt, alpha float64) error
	Finalize() error
}

// subScheduled is implemented by actions that own a nested Scheduler
// (SchedulerAction). Scheduler.Schedule recursively schedules these before
// building its own DAG.
type subScheduled interface {
	ownedScheduler() *Scheduler
}

// BaseAction provides the common plumbing (name, registry-backed handle
// resolution, default port declaration) that concrete Actions embed.
type BaseAction struct {
	ActionName string
	Window     string
	Registry   registry.DataRegistry
	PortList   []Port
}

// Name implements Action.
func (b *BaseAction) Name() string { return b.ActionName }

// Ports returns the action's declared ports.
func (b *BaseAction) Ports() []Port { return b.PortList }

// DeclarePorts walks ports and records each as a read or write of self on
// the Scheduler. Concrete actions call this from their own Declare method,
// passing themselves so the Scheduler can attribute ports to the right
// Action value rather than to the embedded BaseAction.
func DeclarePorts(s *Scheduler, self Action, ports []Port) error {
	for _, p := range ports {
		if p.Dir.reads() {
			if err := s.reads(self, p.Attr, p.Idx); err != nil {
				return err
			}
		}
		if p.Dir.writes() {
			if err := s.writes(self, p.Attr, p.Idx); err != nil {
				return err
			}
		}
	}
	return nil
}

// Handle resolves the dataitem handle for the i-th declared port against
// Window in Registry. If optional is false and the handle is absent, it
// returns a MissingDataItemError naming the action and the port's
// attribute/index.
func (b *BaseAction) Handle(i int, optional bool) (registry.Handle, error) {
	p := b.PortList[i]
	h := b.Registry.ResolveDataitem(b.Window, p.Attr)
	if !h.Valid() && !optional {
		return registry.HandleAbsent, &cmocerr.MissingDataItemError{
			Action: b.ActionName,
			Attr:   p.Attr,
			Idx:    p.Idx,
		}
	}
	return h, nil
}
