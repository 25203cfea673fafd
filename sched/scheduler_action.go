package sched

// SchedulerAction is an Action that owns a nested Scheduler and delegates
// its lifecycle to it. Its Run does not itself propagate alpha: the nested
// scheduler has its own alphaT, set independently by whoever owns it (see
// Scheduler.SetAlpha). This mirrors the source, whose SchedulerAction::run
// leaves the analogous propagation commented out.
type SchedulerAction struct {
	ActionName string
	Sub        *Scheduler
}

// NewSchedulerAction wraps sub as an Action under the given name.
func NewSchedulerAction(name string, sub *Scheduler) *SchedulerAction {
	return &SchedulerAction{ActionName: name, Sub: sub}
}

func (a *SchedulerAction) Name() string { return a.ActionName }

// Declare is a no-op: a SchedulerAction exposes no ports of its own to the
// containing scheduler. Its nested scheduler resolves its own internal
// dependencies independently when Schedule recurses into it.
func (a *SchedulerAction) Declare(s *Scheduler) error { return nil }

func (a *SchedulerAction) ownedScheduler() *Scheduler { return a.Sub }

func (a *SchedulerAction) Init(t float64) error {
	return a.Sub.InitActions(t)
}

func (a *SchedulerAction) Run(t, dt, alpha float64) error {
	return a.Sub.RunActions(t, dt)
}

func (a *SchedulerAction) Finalize() error {
	return a.Sub.FinalizeActions()
}
