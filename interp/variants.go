package interp

import (
	"github.com/rocstar-hpc/cmoc/cmocerr"
	"github.com/rocstar-hpc/cmoc/registry"
	"github.com/rocstar-hpc/cmoc/sched"
)

// alpha is set by the owning Scheduler's SetAlpha/RunActions and observed
// by each variant's Run as the sub-step fraction.

// ExtrapolateLinearAction extrapolates linearly across [0,1] (anchor 0).
// It skips entirely if A_alp is absent and Conditional is set; at
// Order==0 or at a fresh start it short-circuits to a straight copy.
type ExtrapolateLinearAction struct {
	*Base
}

// NewExtrapolateLinear builds an Extrapolate_Linear action for attr.
func NewExtrapolateLinear(name, window string, reg registry.DataRegistry, num registry.NumericLib, attr string, order int, conditional, hasGrad bool) *ExtrapolateLinearAction {
	b := NewBase(name, window, reg, num, attr, AnchorStart, hasGrad)
	b.Order = order
	b.Conditional = conditional
	return &ExtrapolateLinearAction{Base: b}
}

func (a *ExtrapolateLinearAction) Declare(s *sched.Scheduler) error {
	return sched.DeclarePorts(s, a, a.PortList)
}
func (a *ExtrapolateLinearAction) Init(t float64) error { return nil }

func (a *ExtrapolateLinearAction) Run(t, dt, alpha float64) error {
	if err := ValidateAlpha(a.Name(), a.PortList[SlotCurrent].Attr, alpha); err != nil {
		return err
	}

	alp, err := a.Handle(SlotAlpha, a.Conditional)
	if err != nil {
		return err
	}
	if a.Conditional && !alp.Valid() {
		return nil
	}

	cur, err := a.Handle(SlotCurrent, false)
	if err != nil {
		return err
	}

	if a.Order == 0 || a.NewStart(t) {
		a.Numeric.Copy(alp, cur)
		return nil
	}

	old, err := a.Handle(SlotOld, false)
	if err != nil {
		return err
	}
	var grad registry.Handle
	if a.HasGrad {
		grad, err = a.Handle(SlotGrad, true)
		if err != nil {
			return err
		}
	}

	return ExtrapolateLinear(a.Numeric, a.Name(), a.PortList[SlotCurrent].Attr, a.Anchor, dt, a.DtOld, cur, old, alpha-1, alp, grad)
}

func (a *ExtrapolateLinearAction) Finalize() error { return nil }

// ExtrapolateCentralAction is the central-difference extrapolation variant
// (anchor -0.5). It additionally checks that Window exists, since a
// partition may lack this field entirely.
type ExtrapolateCentralAction struct {
	*Base
	WindowExists func() bool
}

// NewExtrapolateCentral builds an Extrapolate_Central action for attr.
// windowExists reports whether this rank's partition carries the window at
// all; when it returns false, Run is a no-op.
func NewExtrapolateCentral(name, window string, reg registry.DataRegistry, num registry.NumericLib, attr string, windowExists func() bool) *ExtrapolateCentralAction {
	b := NewBase(name, window, reg, num, attr, AnchorCentral, true)
	return &ExtrapolateCentralAction{Base: b, WindowExists: windowExists}
}

func (a *ExtrapolateCentralAction) Declare(s *sched.Scheduler) error {
	return sched.DeclarePorts(s, a, a.PortList)
}
func (a *ExtrapolateCentralAction) Init(t float64) error { return nil }

func (a *ExtrapolateCentralAction) Run(t, dt, alpha float64) error {
	if a.WindowExists != nil && !a.WindowExists() {
		return nil
	}
	if err := ValidateAlpha(a.Name(), a.PortList[SlotCurrent].Attr, alpha); err != nil {
		return err
	}

	cur, err := a.Handle(SlotCurrent, false)
	if err != nil {
		return err
	}
	alp, err := a.Handle(SlotAlpha, false)
	if err != nil {
		return err
	}

	if a.NewStart(t) {
		a.Numeric.Copy(alp, cur)
		return nil
	}

	old, err := a.Handle(SlotOld, false)
	if err != nil {
		return err
	}
	grad, err := a.Handle(SlotGrad, true)
	if err != nil {
		return err
	}

	return ExtrapolateLinear(a.Numeric, a.Name(), a.PortList[SlotCurrent].Attr, a.Anchor, dt, a.DtOld, cur, old, alpha-1, alp, grad)
}

func (a *ExtrapolateCentralAction) Finalize() error { return nil }

// InterpolateLinearAction is like ExtrapolateLinearAction but requires
// alpha >= 0 and samples forward (t_out = alpha, not alpha-1).
type InterpolateLinearAction struct {
	*Base
}

// NewInterpolateLinear builds an Interpolate_Linear action for attr.
func NewInterpolateLinear(name, window string, reg registry.DataRegistry, num registry.NumericLib, attr string, order int, hasGrad bool) *InterpolateLinearAction {
	b := NewBase(name, window, reg, num, attr, AnchorStart, hasGrad)
	b.Order = order
	return &InterpolateLinearAction{Base: b}
}

func (a *InterpolateLinearAction) Declare(s *sched.Scheduler) error {
	return sched.DeclarePorts(s, a, a.PortList)
}
func (a *InterpolateLinearAction) Init(t float64) error { return nil }

func (a *InterpolateLinearAction) Run(t, dt, alpha float64) error {
	if err := ValidateAlpha(a.Name(), a.PortList[SlotCurrent].Attr, alpha); err != nil {
		return err
	}
	if alpha < 0 {
		return &cmocerr.InterpolationError{Kind: cmocerr.InvalidAlpha, Action: a.Name(), Attr: a.PortList[SlotCurrent].Attr}
	}

	cur, err := a.Handle(SlotCurrent, false)
	if err != nil {
		return err
	}
	alp, err := a.Handle(SlotAlpha, false)
	if err != nil {
		return err
	}

	if a.Order == 0 || a.NewStart(t) {
		a.Numeric.Copy(alp, cur)
		return nil
	}

	old, err := a.Handle(SlotOld, false)
	if err != nil {
		return err
	}
	var grad registry.Handle
	if a.HasGrad {
		grad, err = a.Handle(SlotGrad, true)
		if err != nil {
			return err
		}
	}

	return ExtrapolateLinear(a.Numeric, a.Name(), a.PortList[SlotCurrent].Attr, a.Anchor, dt, a.DtOld, cur, old, alpha, alp, grad)
}

func (a *InterpolateLinearAction) Finalize() error { return nil }

// InterpolateCentralAction is the forward-interpolating central-difference
// variant (anchor -0.5, t_out = alpha).
type InterpolateCentralAction struct {
	*Base
}

// NewInterpolateCentral builds an Interpolate_Central action for attr.
func NewInterpolateCentral(name, window string, reg registry.DataRegistry, num registry.NumericLib, attr string) *InterpolateCentralAction {
	b := NewBase(name, window, reg, num, attr, AnchorCentral, true)
	return &InterpolateCentralAction{Base: b}
}

func (a *InterpolateCentralAction) Declare(s *sched.Scheduler) error {
	return sched.DeclarePorts(s, a, a.PortList)
}
func (a *InterpolateCentralAction) Init(t float64) error { return nil }

func (a *InterpolateCentralAction) Run(t, dt, alpha float64) error {
	if err := ValidateAlpha(a.Name(), a.PortList[SlotCurrent].Attr, alpha); err != nil {
		return err
	}

	cur, err := a.Handle(SlotCurrent, false)
	if err != nil {
		return err
	}
	alp, err := a.Handle(SlotAlpha, false)
	if err != nil {
		return err
	}

	if a.NewStart(t) {
		a.Numeric.Copy(alp, cur)
		return nil
	}

	old, err := a.Handle(SlotOld, false)
	if err != nil {
		return err
	}
	grad, err := a.Handle(SlotGrad, true)
	if err != nil {
		return err
	}

	return ExtrapolateLinear(a.Numeric, a.Name(), a.PortList[SlotCurrent].Attr, a.Anchor, dt, a.DtOld, cur, old, alpha, alp, grad)
}

func (a *InterpolateCentralAction) Finalize() error { return nil }

// InterpolateConstantAction always copies A -> A_alp, ignoring time
// entirely.
type InterpolateConstantAction struct {
	*Base
}

// NewInterpolateConstant builds an Interpolate_Constant action for attr.
func NewInterpolateConstant(name, window string, reg registry.DataRegistry, num registry.NumericLib, attr string) *InterpolateConstantAction {
	b := NewBase(name, window, reg, num, attr, AnchorStart, false)
	return &InterpolateConstantAction{Base: b}
}

func (a *InterpolateConstantAction) Declare(s *sched.Scheduler) error {
	return sched.DeclarePorts(s, a, a.PortList)
}
func (a *InterpolateConstantAction) Init(t float64) error { return nil }

func (a *InterpolateConstantAction) Run(t, dt, alpha float64) error {
	if err := ValidateAlpha(a.Name(), a.PortList[SlotCurrent].Attr, alpha); err != nil {
		return err
	}
	cur, err := a.Handle(SlotCurrent, false)
	if err != nil {
		return err
	}
	alp, err := a.Handle(SlotAlpha, false)
	if err != nil {
		return err
	}
	a.Numeric.Copy(alp, cur)
	return nil
}

func (a *InterpolateConstantAction) Finalize() error { return nil }
