package schemes

import (
	"github.com/rocstar-hpc/cmoc/agent"
	"github.com/rocstar-hpc/cmoc/coupling"
	"github.com/rocstar-hpc/cmoc/registry"
)

// NewSolidAlone builds the simplest named scheme: one SolidModule agent,
// no coupling partner, mirroring the source's SolidAlone scheme used to
// run a solid solver standalone for verification.
func NewSolidAlone(reg registry.DataRegistry, loader registry.ModuleLoader, num registry.NumericLib) (*coupling.Coupling, error) {
	c := coupling.New("solid-alone", nil)

	solid, err := agent.NewAgent("solid", reg, loader, num, NewSolidModule(1.0), "libsolid.so", "solid_surf", "solid_vol")
	if err != nil {
		return nil, err
	}
	solid.Spec = &SolidSpec{MaxDt: 0.1}
	if err := c.AddAgent(solid); err != nil {
		return nil, err
	}
	if err := c.AddRuntimeAction(solid.Main); err != nil {
		return nil, err
	}
	return c, nil
}

// NewSolidFluidSPC builds a two-agent scheme named after the source's
// "SPC" (serial predictor-corrector) family: a SolidModule agent feeding
// its surface temperature to a FluidModule agent once per macro-step via a
// coupling.TransferAction ordered on the runtime scheduler between the two
// agents' main actions.
func NewSolidFluidSPC(reg registry.DataRegistry, loader registry.ModuleLoader, num registry.NumericLib) (*coupling.Coupling, error) {
	c := coupling.New("solid-fluid-spc", nil)

	solid, err := agent.NewAgent("solid", reg, loader, num, NewSolidModule(1.0), "libsolid.so", "solid_surf", "solid_vol")
	if err != nil {
		return nil, err
	}
	solid.Spec = &SolidSpec{MaxDt: 0.1}
	if err := c.AddAgent(solid); err != nil {
		return nil, err
	}

	fluid, err := agent.NewAgent("fluid", reg, loader, num, NewFluidModule(), "libfluid.so", "fluid_surf", "fluid_vol")
	if err != nil {
		return nil, err
	}
	fluid.Spec = &FluidSpec{MaxDt: 0.05, Convergent: true}
	if err := c.AddAgent(fluid); err != nil {
		return nil, err
	}

	if err := c.AddRuntimeAction(solid.Main); err != nil {
		return nil, err
	}
	xfer := coupling.NewTransferAction("solid->fluid.temperature", reg, num,
		"solid_surf", "temperature", "fluid_surf", "temperature")
	if err := c.AddRuntimeAction(xfer); err != nil {
		return nil, err
	}
	if err := c.AddRuntimeAction(fluid.Main); err != nil {
		return nil, err
	}

	c.MaxPredCorr = 1
	return c, nil
}
