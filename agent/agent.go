// Package agent implements the Agent lifecycle: it wraps one physics
// module, owns its buffer windows and five sub-schedulers, mediates the
// solver's BC/grid-motion callbacks, and carries the predictor-corrector
// store/restore machinery.
package agent

import (
	"fmt"
	"sort"

	"github.com/rocstar-hpc/cmoc/cmocerr"
	"github.com/rocstar-hpc/cmoc/registry"
	"github.com/rocstar-hpc/cmoc/sched"
)

// Module is the physics-module ABI the core calls into: initialize,
// advance one sub-step, and finalize. A module receives the owning Agent
// at Initialize time and is expected to invoke the Agent's InitCallback,
// ObtainBC and ObtainGM methods by the handles it was given, reentrantly,
// from within UpdateSolution.
type Module interface {
	Initialize(a *Agent) error
	UpdateSolution(t, dt, alpha float64) error
	Finalize() error
}

// Specialization supplies the physics-specific behavior a concrete agent
// binding (fluid, solid, combustion, grid-motion) layers over the generic
// Agent: building its buffer windows, bounding its stable time step, and
// gating predictor-corrector convergence beyond the generic
// ‖cur-pre‖/‖cur‖ test. Composition over the source's per-physics Agent
// subclasses (BurnAgent, FluidAgent, SolidAgent): one concrete Agent type
// plus a pluggable Specialization, rather than an inheritance chain.
type Specialization interface {
	CreateBuffers(a *Agent) error
	MaxTimestep(t, dt float64) float64
	CheckConvergence() bool
}

// Agent wraps one physics module: its module-window, its surface and
// volume buffer-window names, five sub-schedulers, a deferred
// DataItemRegistration queue, and predictor-corrector store state.
type Agent struct {
	Name string

	Registry registry.DataRegistry
	Loader   registry.ModuleLoader
	Numeric  registry.NumericLib
	Module   Module
	Spec     Specialization

	moduleHandle registry.Handle

	SurfaceWindow string
	VolumeWindow  string

	initCallback *sched.Scheduler
	bcInit       *sched.Scheduler
	bc           map[int]*sched.Scheduler
	gridMotion   *sched.Scheduler
	Main         *PhysicsAction

	pending    []registration
	signatures map[string]dataitemSignature

	pcHdls      map[string]pcEntry
	scratchHdls map[string]registry.Handle

	timestamp float64
	currentDt float64
}

// NewAgent loads moduleLib under name and constructs the agent's five
// sub-schedulers. surfaceWindow/volumeWindow are the names the Coupling
// declared; the physics module may later override them via InitCallback
// once it knows its real window names.
func NewAgent(
	name string,
	reg registry.DataRegistry,
	loader registry.ModuleLoader,
	num registry.NumericLib,
	module Module,
	moduleLib, surfaceWindow, volumeWindow string,
) (*Agent, error) {
	h, err := loader.Load(name, moduleLib)
	if err != nil {
		return nil, &cmocerr.ConfigurationError{Agent: name, Msg: "module library load failed: " + err.Error()}
	}

	a := &Agent{
		Name:          name,
		Registry:      reg,
		Loader:        loader,
		Numeric:       num,
		Module:        module,
		moduleHandle:  h,
		SurfaceWindow: surfaceWindow,
		VolumeWindow:  volumeWindow,
		initCallback:  sched.NewUserScheduler(name + ".init-callback"),
		bcInit:        sched.NewUserScheduler(name + ".bc-init"),
		bc:            make(map[int]*sched.Scheduler),
		gridMotion:    sched.NewUserScheduler(name + ".grid-motion"),
		signatures:    make(map[string]dataitemSignature),
		pcHdls:        make(map[string]pcEntry),
	}
	a.Main = &PhysicsAction{agent: a}
	return a, nil
}

// AddICAction adds act to the init-callback sub-scheduler.
func (a *Agent) AddICAction(act sched.Action) error { return a.initCallback.AddAction(act) }

// AddBCInitAction adds act to the bc-init sub-scheduler.
func (a *Agent) AddBCInitAction(act sched.Action) error { return a.bcInit.AddAction(act) }

// AddBCAction adds act to the level'th BC sub-scheduler, creating it if
// this is the first action registered at that level.
func (a *Agent) AddBCAction(level int, act sched.Action) error {
	s, ok := a.bc[level]
	if !ok {
		s = sched.NewUserScheduler(fmt.Sprintf("%s.bc[%d]", a.Name, level))
		a.bc[level] = s
	}
	return s.AddAction(act)
}

// AddGMAction adds act to the grid-motion sub-scheduler.
func (a *Agent) AddGMAction(act sched.Action) error { return a.gridMotion.AddAction(act) }

func (a *Agent) allSchedulers() []*sched.Scheduler {
	out := []*sched.Scheduler{a.initCallback, a.bcInit, a.gridMotion}
	levels := make([]int, 0, len(a.bc))
	for lvl := range a.bc {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)
	for _, lvl := range levels {
		out = append(out, a.bc[lvl])
	}
	return out
}

func (a *Agent) callMethod(fn func(*sched.Scheduler) error) error {
	for _, s := range a.allSchedulers() {
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}

// Schedule calls Schedule on all four sub-scheduler roles (init-callback,
// bc-init, every bc level, grid-motion).
func (a *Agent) Schedule() error {
	return a.callMethod(func(s *sched.Scheduler) error { return s.Schedule() })
}

// Init initializes the physics module (loaded by NewAgent), which is expected to call
// InitCallback synchronously (creating buffers and flushing deferred
// dataitem registrations), then schedules all four sub-scheduler roles and
// runs their InitActions.
func (a *Agent) Init(t, dt float64) error {
	a.timestamp = t
	a.currentDt = dt

	if err := a.Module.Initialize(a); err != nil {
		return err
	}
	if err := a.Schedule(); err != nil {
		return err
	}
	return a.callMethod(func(s *sched.Scheduler) error { return s.InitActions(t) })
}

// InitCallback is invoked by the physics module once it knows its real
// surface/volume window names. It records them, invokes the
// Specialization's CreateBuffers hook, then flushes the deferred
// DataItemRegistration queue into the registry.
func (a *Agent) InitCallback(surfWindow, volWindow string, options map[string]string) error {
	a.SurfaceWindow = surfWindow
	a.VolumeWindow = volWindow

	if a.Spec != nil {
		if err := a.Spec.CreateBuffers(a); err != nil {
			return err
		}
	}
	return a.CreateRegisteredDataitems(a.SurfaceWindow)
}

// ObtainBC runs the level'th BC sub-scheduler at sub-step alpha. It is
// called reentrantly by the physics module from inside UpdateSolution; it
// must not call back into the coupling's top-level scheduler.
func (a *Agent) ObtainBC(alpha float64, level int) error {
	s, ok := a.bc[level]
	if !ok {
		return nil
	}
	s.SetAlpha(alpha)
	return s.RunActions(a.timestamp, a.currentDt)
}

// ObtainGM runs the grid-motion sub-scheduler at sub-step alpha.
func (a *Agent) ObtainGM(alpha float64) error {
	a.gridMotion.SetAlpha(alpha)
	return a.gridMotion.RunActions(a.timestamp, a.currentDt)
}

// MaxTimestep bounds dt per the Specialization's stable-step rule, or
// returns dt unchanged when no Specialization is set.
func (a *Agent) MaxTimestep(t, dt float64) float64 {
	if a.Spec == nil {
		return dt
	}
	return a.Spec.MaxTimestep(t, dt)
}

// CheckConvergence returns true iff every registered predictor-corrector
// attribute is within tolerance and (if set) the Specialization's own
// convergence gate also holds.
func (a *Agent) CheckConvergence() bool {
	for name, e := range a.pcHdls {
		if !a.checkConvergenceHelper(e.live, e.backup, e.tol, name) {
			return false
		}
	}
	if a.Spec != nil {
		return a.Spec.CheckConvergence()
	}
	return true
}

// Finalize finalizes all sub-schedulers, then (unless inRestart) finalizes
// the physics module and deletes the surface window. Per the source, the
// module's own finalize is skipped during a restart-triggered finalize,
// since the module's persisted state is what the restart is meant to
// preserve.
func (a *Agent) Finalize(inRestart bool) error {
	if err := a.callMethod(func(s *sched.Scheduler) error { return s.FinalizeActions() }); err != nil {
		return err
	}
	if inRestart {
		return nil
	}
	if err := a.Module.Finalize(); err != nil {
		return err
	}
	if win := a.Registry.ResolveWindow(a.SurfaceWindow); win.Valid() {
		a.Registry.Delete(win)
	}
	return nil
}

// Unload releases the agent's loaded module library.
func (a *Agent) Unload() { a.Loader.Unload(a.moduleHandle) }
