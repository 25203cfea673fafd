// Package schemes ships minimal example physics bindings and named
// coupling-scheme constructors, wiring concrete agents onto a
// coupling.Coupling the same way the source's builtin_couplings.h /
// derived_couplings.h enumerate named schemes (SolidAlone, SolidFluidSPC,
// ...). These are demonstration wiring for the scheduler/interpolation
// machinery, not a physics implementation.
package schemes

import (
	"github.com/rocstar-hpc/cmoc/agent"
	"github.com/rocstar-hpc/cmoc/registry"
)

// SolidModule is a minimal agent.Module: it owns one scalar attribute
// ("temperature") on its surface window, enough to exercise the scheduler
// and interpolation machinery end to end. UpdateSolution leaves the
// temperature unchanged; Rate is stored but not used.
type SolidModule struct {
	Rate float64

	tHandle registry.Handle
}

// NewSolidModule creates a SolidModule with the given Rate.
func NewSolidModule(rate float64) *SolidModule { return &SolidModule{Rate: rate} }

func (m *SolidModule) Initialize(a *agent.Agent) error {
	a.RegisterNewDataitem("", "temperature", registry.Node)
	if err := a.InitCallback(a.SurfaceWindow, a.VolumeWindow, nil); err != nil {
		return err
	}
	m.tHandle = a.Registry.ResolveDataitem(a.SurfaceWindow, "temperature")
	return nil
}

func (m *SolidModule) UpdateSolution(t, dt, alpha float64) error {
	return nil
}

func (m *SolidModule) Finalize() error { return nil }

// SolidSpec is the agent.Specialization for SolidModule: a fixed stable
// step bound and unconditional convergence (solids in this example have no
// inner iteration of their own).
type SolidSpec struct {
	MaxDt float64
}

func (s *SolidSpec) CreateBuffers(a *agent.Agent) error { return nil }

func (s *SolidSpec) MaxTimestep(t, dt float64) float64 {
	if s.MaxDt > 0 && s.MaxDt < dt {
		return s.MaxDt
	}
	return dt
}

func (s *SolidSpec) CheckConvergence() bool { return true }
