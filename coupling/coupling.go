// Package coupling implements the top-level simulation driver: it owns a
// set of Agents plus an init-time and a runtime Scheduler, drives their
// combined init/run/finalize lifecycle, and fans out predictor-corrector
// iteration and restart I/O across them.
package coupling

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/rocstar-hpc/cmoc/agent"
	"github.com/rocstar-hpc/cmoc/cmocerr"
	"github.com/rocstar-hpc/cmoc/sched"
)

// MPI is the minimal rank/size collaborator the source's Coupling<->MPI
// contract requires. The core itself consults only CommRank (rank 0 owns
// restart-info I/O); CommSize is exposed alongside it.
type MPI interface {
	CommRank() int
	CommSize() int
}

// SingleRank is the default MPI double for non-distributed runs: one rank,
// always rank 0.
type SingleRank struct{}

func (SingleRank) CommRank() int { return 0 }
func (SingleRank) CommSize() int { return 1 }

// Coupling owns a vector of Agents, an init-Scheduler and a
// runtime-Scheduler (both User-ordered by default), and predictor-corrector
// iteration state.
type Coupling struct {
	Name string
	// RunID is a short unique identifier generated once per Coupling. It
	// is not written into GDL graph dumps or log lines by this module.
	RunID string

	Agents       []*agent.Agent
	agentsByName map[string]*agent.Agent

	InitScheduler    *sched.Scheduler
	RuntimeScheduler *sched.Scheduler

	MPI         MPI
	RestartPath string

	iPredCorr   int
	MaxPredCorr int

	initStarted  bool
	initRemeshed bool
	restarting   bool
}

// New creates a Coupling with an init- and a runtime-Scheduler, both
// User-ordered. mpi may be nil, in which case SingleRank is used.
func New(name string, mpi MPI) *Coupling {
	if mpi == nil {
		mpi = SingleRank{}
	}
	return &Coupling{
		Name:             name,
		RunID:            xid.New().String(),
		agentsByName:     make(map[string]*agent.Agent),
		InitScheduler:    sched.NewUserScheduler(name + ".init"),
		RuntimeScheduler: sched.NewUserScheduler(name + ".runtime"),
		MPI:              mpi,
		MaxPredCorr:      1,
	}
}

// AddAgent registers an agent with the coupling. Agent names must be
// unique within one Coupling.
func (c *Coupling) AddAgent(a *agent.Agent) error {
	if _, ok := c.agentsByName[a.Name]; ok {
		return &cmocerr.ConfigurationError{Agent: a.Name, Msg: "agent already added to coupling " + c.Name}
	}
	c.Agents = append(c.Agents, a)
	c.agentsByName[a.Name] = a
	return nil
}

// AddInitAction adds act to the coupling-level init Scheduler.
func (c *Coupling) AddInitAction(act sched.Action) error { return c.InitScheduler.AddAction(act) }

// AddRuntimeAction adds act to the coupling-level runtime Scheduler.
func (c *Coupling) AddRuntimeAction(act sched.Action) error {
	return c.RuntimeScheduler.AddAction(act)
}

// Schedule schedules both coupling-level schedulers. Each Agent's own
// sub-schedulers are scheduled by Agent.Init, once its module has had a
// chance to register its BC/init-callback/grid-motion actions; scheduling
// them here too would hit Scheduler.Schedule's idempotent-rejecting second
// call.
func (c *Coupling) Schedule() error {
	if err := c.InitScheduler.Schedule(); err != nil {
		return err
	}
	return c.RuntimeScheduler.Schedule()
}

// Init schedules the coupling, initializes every agent (Agent.Init runs
// InitActions on the agent's own sub-schedulers), then, on the two
// coupling-level schedulers only, calls Restarting (when reinit is true)
// and InitActions, and finally runs the init scheduler once at alphaT=0.
// Restarting is not applied to the agents' sub-schedulers.
func (c *Coupling) Init(t, dt float64, reinit bool) error {
	if err := c.Schedule(); err != nil {
		return err
	}
	for _, a := range c.Agents {
		if err := a.Init(t, dt); err != nil {
			return err
		}
	}

	if reinit {
		for _, s := range c.allSchedulers() {
			s.Restarting(t)
		}
	}

	for _, s := range c.allSchedulers() {
		if err := s.InitActions(t); err != nil {
			return err
		}
	}

	c.InitScheduler.SetAlpha(0)
	if err := c.InitScheduler.RunActions(t, dt); err != nil {
		return err
	}

	c.initStarted = false
	c.initRemeshed = false
	return nil
}

// Run advances the simulation by one macro-step. dt is first clamped to
// the minimum stable step across all agents, then the runtime scheduler
// runs once with top-level alphaT=-1. It returns the new simulation time,
// t + dt*zoom when zoom > 0, and t + dt when zoom <= 0.
func (c *Coupling) Run(t, dt float64, iPredCorr int, zoom float64) (float64, error) {
	c.iPredCorr = iPredCorr

	for _, a := range c.Agents {
		dt = min(dt, a.MaxTimestep(t, dt))
	}

	c.RuntimeScheduler.SetAlpha(-1)
	if err := c.RuntimeScheduler.RunActions(t, dt); err != nil {
		return t, err
	}

	scale := zoom
	if scale <= 0 {
		scale = 1
	}
	return t + dt*scale, nil
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// InitConvergence resets each agent's predictor-corrector store ahead of
// iteration i. It is a no-op when at most one PC iteration is configured,
// or on the first iteration (i == 0), mirroring the source's "nothing to
// roll back from yet" rule.
func (c *Coupling) InitConvergence(i int) {
	if c.MaxPredCorr <= 1 || i <= 0 {
		return
	}
	for _, a := range c.Agents {
		a.StoreSolutions(false)
	}
}

// CheckConvergence short-circuits true when only one PC iteration is
// configured; otherwise it is the AND of every agent's CheckConvergence.
func (c *Coupling) CheckConvergence() bool {
	if c.MaxPredCorr == 1 {
		return true
	}
	for _, a := range c.Agents {
		if !a.CheckConvergence() {
			return false
		}
	}
	return true
}

// Finalize finalizes every agent, in restart mode or not.
func (c *Coupling) Finalize(inRestart bool) error {
	for _, a := range c.Agents {
		if err := a.Finalize(inRestart); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coupling) allSchedulers() []*sched.Scheduler {
	return []*sched.Scheduler{c.InitScheduler, c.RuntimeScheduler}
}

// Agent looks up a registered agent by name.
func (c *Coupling) Agent(name string) (*agent.Agent, error) {
	a, ok := c.agentsByName[name]
	if !ok {
		return nil, fmt.Errorf("coupling %s: no such agent %q", c.Name, name)
	}
	return a, nil
}
