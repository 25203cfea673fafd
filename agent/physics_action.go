package agent

import "github.com/rocstar-hpc/cmoc/sched"

// PhysicsAction is the Agent's main action. On the first sub-step of a
// macro-step (alpha == 0) it runs the bc-init sub-scheduler before handing
// control to the physics module; the module then reentrantly calls
// ObtainBC/ObtainGM for its own sub-steps.
type PhysicsAction struct {
	agent *Agent
}

func (p *PhysicsAction) Name() string { return p.agent.Name + ".physics" }

// Declare exposes no ports: the agent's externally visible data transfer
// is wired by the Coupling via separate transfer actions that read/write
// the agent's surface-window dataitems directly.
func (p *PhysicsAction) Declare(s *sched.Scheduler) error { return nil }

func (p *PhysicsAction) Init(t float64) error { return nil }

func (p *PhysicsAction) Run(t, dt, alpha float64) error {
	a := p.agent
	a.timestamp = t
	a.currentDt = dt

	if alpha == 0 {
		if err := a.bcInit.RunActions(t, dt); err != nil {
			return err
		}
	}
	return a.Module.UpdateSolution(t, dt, alpha)
}

func (p *PhysicsAction) Finalize() error { return nil }
