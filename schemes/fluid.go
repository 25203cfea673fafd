package schemes

import (
	"github.com/rocstar-hpc/cmoc/agent"
	"github.com/rocstar-hpc/cmoc/registry"
)

// FluidModule is a minimal agent.Module exposing a "temperature" attribute
// it expects to receive from a coupled SolidModule via a
// coupling.TransferAction wired on the coupling's runtime scheduler.
type FluidModule struct {
	tHandle registry.Handle
}

// NewFluidModule creates a FluidModule.
func NewFluidModule() *FluidModule { return &FluidModule{} }

func (m *FluidModule) Initialize(a *agent.Agent) error {
	a.RegisterNewDataitem("", "temperature", registry.Node)
	if err := a.InitCallback(a.SurfaceWindow, a.VolumeWindow, nil); err != nil {
		return err
	}
	m.tHandle = a.Registry.ResolveDataitem(a.SurfaceWindow, "temperature")
	return nil
}

func (m *FluidModule) UpdateSolution(t, dt, alpha float64) error {
	return nil
}

func (m *FluidModule) Finalize() error { return nil }

// FluidSpec is the agent.Specialization for FluidModule.
type FluidSpec struct {
	MaxDt      float64
	Convergent bool
}

func (s *FluidSpec) CreateBuffers(a *agent.Agent) error { return nil }

func (s *FluidSpec) MaxTimestep(t, dt float64) float64 {
	if s.MaxDt > 0 && s.MaxDt < dt {
		return s.MaxDt
	}
	return dt
}

func (s *FluidSpec) CheckConvergence() bool { return s.Convergent }
