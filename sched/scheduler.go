package sched

import "github.com/rocstar-hpc/cmoc/cmocerr"

// Kind selects the Scheduler's ordering strategy.
type Kind int

const (
	// DDG orders actions by topological sort over declared read/write
	// ports.
	DDG Kind = iota
	// User orders actions by insertion order, synthesizing a trivial
	// linear dependency chain.
	User
)

// lifecycle is the Scheduler's state machine:
// Unscheduled -> Scheduled -> Inited -> (Running)* -> Finalized.
type lifecycle int

const (
	unscheduled lifecycle = iota
	scheduledState
	inited
	finalizedState
)

// portKey identifies a single (attr, idx) slot.
type portKey struct {
	attr string
	idx  int
}

type actionItem struct {
	action Action
	ports  []Port
	seq    int // registration order, used for deterministic tie-breaking

	producers []*actionItem // distinct items producing one of this item's IN ports
	consumers []*actionItem // distinct items consuming one of this item's OUT ports
}

// Scheduler holds an ordered set of Actions (as ActionItems) and drives
// their declare/init/run/finalize lifecycle. schedule() is
// idempotent-rejecting: a second call is an error.
type Scheduler struct {
	Name string
	kind Kind

	items   []*actionItem
	byItem  map[Action]*actionItem
	state   lifecycle
	alphaT  float64
	sort    []*actionItem // topological (or linear) run order
}

// NewDDGScheduler creates a Scheduler whose order is determined by a
// topological sort of declared data dependencies.
func NewDDGScheduler(name string) *Scheduler {
	return &Scheduler{Name: name, kind: DDG, byItem: make(map[Action]*actionItem)}
}

// NewUserScheduler creates a Scheduler whose order is insertion order.
func NewUserScheduler(name string) *Scheduler {
	return &Scheduler{Name: name, kind: User, byItem: make(map[Action]*actionItem)}
}

// AddAction appends a to the scheduler and invokes a.Declare(s).
func (s *Scheduler) AddAction(a Action) error {
	item := &actionItem{action: a, seq: len(s.items)}
	s.items = append(s.items, item)
	s.byItem[a] = item
	return a.Declare(s)
}

// reads records that a reads (attr, idx). a must already be registered via
// AddAction.
func (s *Scheduler) reads(a Action, attr string, idx int) error {
	item := s.mustItem(a)
	item.ports = append(item.ports, Port{Attr: attr, Idx: idx, Dir: In})
	return nil
}

// writes records that a writes (attr, idx). a must already be registered
// via AddAction.
func (s *Scheduler) writes(a Action, attr string, idx int) error {
	item := s.mustItem(a)
	item.ports = append(item.ports, Port{Attr: attr, Idx: idx, Dir: Out})
	return nil
}

func (s *Scheduler) mustItem(a Action) *actionItem {
	item, ok := s.byItem[a]
	if !ok {
		panic("sched: action not registered with this scheduler: " + a.Name())
	}
	return item
}

// Scheduled reports whether Schedule has completed successfully.
func (s *Scheduler) Scheduled() bool { return s.state >= scheduledState }

// Schedule builds the run order. It is idempotent-rejecting: calling it a
// second time returns an error instead of rebuilding.
func (s *Scheduler) Schedule() error {
	if s.state >= scheduledState {
		return &cmocerr.SchedulingError{
			Kind:      cmocerr.AlreadyScheduled,
			Scheduler: s.Name,
			Action:    "<schedule>",
		}
	}

	for _, item := range s.items {
		if ss, ok := item.action.(subScheduled); ok {
			if sub := ss.ownedScheduler(); sub != nil && !sub.Scheduled() {
				if err := sub.Schedule(); err != nil {
					return err
				}
			}
		}
	}

	var err error
	switch s.kind {
	case DDG:
		err = s.scheduleDDG()
	case User:
		err = s.scheduleUser()
	}
	if err != nil {
		return err
	}

	s.state = scheduledState
	return nil
}

func (s *Scheduler) scheduleUser() error {
	for i := 0; i < len(s.items)-1; i++ {
		a, b := s.items[i], s.items[i+1]
		a.consumers = append(a.consumers, b)
		b.producers = append(b.producers, a)
	}
	s.sort = append([]*actionItem(nil), s.items...)
	return nil
}

func (s *Scheduler) scheduleDDG() error {
	producerOf := make(map[portKey]*actionItem)
	consumerOf := make(map[portKey]*actionItem)

	for _, item := range s.items {
		for _, p := range item.ports {
			key := portKey{p.Attr, p.Idx}
			if p.Dir.writes() {
				if existing, ok := producerOf[key]; ok && existing != item {
					return &cmocerr.SchedulingError{
						Kind:      cmocerr.DuplicateProducer,
						Scheduler: s.Name,
						Action:    item.action.Name(),
						Attr:      p.Attr,
						Idx:       p.Idx,
					}
				}
				producerOf[key] = item
			}
		}
	}

	for _, item := range s.items {
		for _, p := range item.ports {
			key := portKey{p.Attr, p.Idx}
			if p.Dir.reads() {
				if existing, ok := consumerOf[key]; ok && existing != item {
					return &cmocerr.SchedulingError{
						Kind:      cmocerr.DuplicateConsumer,
						Scheduler: s.Name,
						Action:    item.action.Name(),
						Attr:      p.Attr,
						Idx:       p.Idx,
					}
				}
				consumerOf[key] = item
			}
		}
	}

	seenProducer := make(map[*actionItem]map[*actionItem]bool)
	seenConsumer := make(map[*actionItem]map[*actionItem]bool)

	for _, item := range s.items {
		for _, p := range item.ports {
			key := portKey{p.Attr, p.Idx}

			if p.Dir.reads() {
				producer, ok := producerOf[key]
				if !ok {
					return &cmocerr.SchedulingError{
						Kind:      cmocerr.UnresolvedInput,
						Scheduler: s.Name,
						Action:    item.action.Name(),
						Attr:      p.Attr,
						Idx:       p.Idx,
					}
				}
				if seenProducer[item] == nil {
					seenProducer[item] = make(map[*actionItem]bool)
				}
				if !seenProducer[item][producer] {
					seenProducer[item][producer] = true
					item.producers = append(item.producers, producer)
				}
			}

			if p.Dir.writes() {
				consumer, ok := consumerOf[key]
				if !ok {
					return &cmocerr.SchedulingError{
						Kind:      cmocerr.UnresolvedOutput,
						Scheduler: s.Name,
						Action:    item.action.Name(),
						Attr:      p.Attr,
						Idx:       p.Idx,
					}
				}
				if seenConsumer[item] == nil {
					seenConsumer[item] = make(map[*actionItem]bool)
				}
				if !seenConsumer[item][consumer] {
					seenConsumer[item][consumer] = true
					item.consumers = append(item.consumers, consumer)
				}
			}
		}
	}

	for _, item := range s.items {
		for _, p := range item.ports {
			key := portKey{p.Attr, p.Idx}
			if p.Dir.reads() {
				if _, ok := producerOf[key]; !ok {
					return &cmocerr.SchedulingError{Kind: cmocerr.DanglingPort, Scheduler: s.Name, Action: item.action.Name(), Attr: p.Attr, Idx: p.Idx}
				}
			}
			if p.Dir.writes() {
				if _, ok := consumerOf[key]; !ok {
					return &cmocerr.SchedulingError{Kind: cmocerr.DanglingPort, Scheduler: s.Name, Action: item.action.Name(), Attr: p.Attr, Idx: p.Idx}
				}
			}
		}
	}

	return s.topologicalSort()
}

// topologicalSort is a repeated-scan Kahn variant: each pass walks items in
// registration order and places any item whose every producer is already
// placed. Repeated scanning (rather than a ready-queue) keeps the
// tie-break rule ("registration order, stable") a direct consequence of
// the scan order instead of a separate invariant to maintain.
func (s *Scheduler) topologicalSort() error {
	placed := make([]bool, len(s.items))
	remaining := len(s.items)
	s.sort = make([]*actionItem, 0, len(s.items))

	for remaining > 0 {
		progress := false
		for i, item := range s.items {
			if placed[i] {
				continue
			}
			ready := true
			for _, producer := range item.producers {
				if !placed[producer.seq] {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}
			placed[i] = true
			s.sort = append(s.sort, item)
			remaining--
			progress = true
		}
		if !progress {
			return &cmocerr.SchedulingError{
				Kind:      cmocerr.CycleDetected,
				Scheduler: s.Name,
				Action:    "<schedule>",
			}
		}
	}
	return nil
}

// InitActions invokes Init(t) on every action in topological order. It is
// idempotent within one lifecycle: a second call is a no-op unless
// Restarting cleared the inited flag.
func (s *Scheduler) InitActions(t float64) error {
	if s.state == inited {
		return nil
	}
	for _, item := range s.sort {
		if err := item.action.Init(t); err != nil {
			return err
		}
	}
	s.state = inited
	return nil
}

// RunActions invokes Run(t, dt, alphaT) on every action in topological
// order. alphaT must have been set via SetAlpha beforehand (top-level
// Couplings use -1; nested schedulers set their own).
func (s *Scheduler) RunActions(t, dt float64) error {
	if s.state < scheduledState {
		panic("sched: RunActions called before Schedule on " + s.Name)
	}
	for _, item := range s.sort {
		if err := item.action.Run(t, dt, s.alphaT); err != nil {
			return err
		}
	}
	return nil
}

// SetAlpha sets the sub-step fraction used by the next RunActions call.
func (s *Scheduler) SetAlpha(alpha float64) { s.alphaT = alpha }

// Alpha returns the currently configured sub-step fraction.
func (s *Scheduler) Alpha() float64 { return s.alphaT }

// FinalizeActions invokes Finalize in reverse topological order. It is a
// no-op if the scheduler has no actions.
func (s *Scheduler) FinalizeActions() error {
	for i := len(s.sort) - 1; i >= 0; i-- {
		if err := s.sort[i].action.Finalize(); err != nil {
			return err
		}
	}
	s.state = finalizedState
	return nil
}

// Restarting clears the inited flag so the next InitActions call runs
// again. t is not consulted.
func (s *Scheduler) Restarting(t float64) {
	if s.state == inited {
		s.state = scheduledState
	}
}

// Order returns the computed run order. It is nil until Schedule succeeds.
func (s *Scheduler) Order() []Action {
	out := make([]Action, len(s.sort))
	for i, item := range s.sort {
		out[i] = item.action
	}
	return out
}

// Edge is one resolved producer->consumer data dependency, named for GDL
// diagnostic output.
type Edge struct {
	Producer, Consumer string
	Attr               string
	Idx                int
}

// Edges returns every resolved IN-port dependency edge: one per (consumer,
// attr, idx) whose producer this scheduler linked during Schedule.
func (s *Scheduler) Edges() []Edge {
	var out []Edge
	for _, item := range s.items {
		for _, p := range item.ports {
			if !p.Dir.reads() {
				continue
			}
			for _, producer := range item.producers {
				for _, pp := range producer.ports {
					if pp.Dir.writes() && pp.Attr == p.Attr && pp.Idx == p.Idx {
						out = append(out, Edge{
							Producer: producer.action.Name(),
							Consumer: item.action.Name(),
							Attr:     p.Attr,
							Idx:      p.Idx,
						})
					}
				}
			}
		}
	}
	return out
}
