package interp

import (
	"github.com/rocstar-hpc/cmoc/registry"
	"github.com/rocstar-hpc/cmoc/sched"
)

// Slot indexes the four related dataitems every InterpolateAction variant
// may touch.
const (
	SlotCurrent = iota // A: current value
	SlotOld            // A_old: previous-step value
	SlotAlpha          // A_alp: value sampled at sub-step alpha
	SlotGrad           // A_grad: optional time derivative
)

// Base is embedded by every concrete InterpolateAction. It owns the four
// port slots and the shared Backup/NewStart machinery; concrete variants
// supply their own Run implementing the skip/copy shortcuts and kernel
// call described by spec 4.3.
type Base struct {
	*sched.BaseAction

	Numeric registry.NumericLib
	Anchor  Anchor

	HasGrad     bool // A_grad is tracked for this attribute
	Conditional bool // skip the run entirely if A_alp is absent
	Order       int  // 0 means "no interpolation": always copy A -> A_alp

	DtOld float64 // step size of the previous macro-step; 0 before the first backup
}

// NewBase constructs the shared slot layout for attr on window. A_grad is
// only declared as a port when hasGrad is true.
func NewBase(name, window string, reg registry.DataRegistry, num registry.NumericLib, attr string, anchor Anchor, hasGrad bool) *Base {
	ports := []sched.Port{
		{Attr: attr, Idx: SlotCurrent, Dir: sched.In},
		{Attr: attr + "_old", Idx: SlotOld, Dir: sched.InOut},
		{Attr: attr + "_alp", Idx: SlotAlpha, Dir: sched.Out},
	}
	if hasGrad {
		ports = append(ports, sched.Port{Attr: attr + "_grad", Idx: SlotGrad, Dir: sched.InOut})
	}
	return &Base{
		BaseAction: &sched.BaseAction{ActionName: name, Window: window, Registry: reg, PortList: ports},
		Numeric:    num,
		Anchor:     anchor,
		HasGrad:    hasGrad,
	}
}

// NewStart reports whether t marks the start of a fresh run. The source
// tests this with exact floating equality against zero; per spec 9 this is
// carried forward unchanged rather than replaced with an epsilon window,
// since the intended tolerance (if any) cannot be recovered from the
// distillation.
func (b *Base) NewStart(t float64) bool {
	return t == 0.0
}

// Backup snapshots state once per converged macro-step: it derives A_grad
// from the finite difference (A-A_old)/dtOld when dtOld > 0 (else zeroes
// it), then copies A -> A_old. Calling it twice in a row with no
// intervening Run is idempotent: A already equals A_old after the first
// call, so the second call's copy and (if applicable) zero-delta gradient
// update are no-ops.
func (b *Base) Backup(dtOld float64) error {
	b.DtOld = dtOld

	cur, err := b.Handle(SlotCurrent, false)
	if err != nil {
		return err
	}
	old, err := b.Handle(SlotOld, false)
	if err != nil {
		return err
	}

	if b.HasGrad {
		grad, err := b.Handle(SlotGrad, true)
		if err != nil {
			return err
		}
		if grad.Valid() {
			if dtOld > 0 {
				b.Numeric.Sub(grad, cur, old)
				b.Numeric.DivScalar(grad, grad, dtOld)
			} else {
				b.Numeric.Zero(grad)
			}
		}
	}

	b.Numeric.Copy(old, cur)
	return nil
}
