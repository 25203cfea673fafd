package coupling

import (
	"github.com/rocstar-hpc/cmoc/registry"
	"github.com/rocstar-hpc/cmoc/sched"
)

// TransferAction is the inter-agent data-transfer action the top-level
// scheduler orders alongside agents' main actions (§3 "Data flow"): it
// declares one IN port on the source attribute and one OUT port on the
// destination attribute, and copies the source's value into the
// destination via NumericLib on Run.
type TransferAction struct {
	*sched.BaseAction

	srcWindow, srcAttr string
	dstWindow, dstAttr string
	numeric            registry.NumericLib

	srcHandle, dstHandle registry.Handle
}

// NewTransferAction declares a transfer of srcAttr on srcWindow to dstAttr
// on dstWindow, resolved against reg when the owning Scheduler declares
// this action.
func NewTransferAction(name string, reg registry.DataRegistry, num registry.NumericLib, srcWindow, srcAttr, dstWindow, dstAttr string) *TransferAction {
	ports := []sched.Port{
		{Attr: srcAttr, Dir: sched.In},
		{Attr: dstAttr, Dir: sched.Out},
	}
	return &TransferAction{
		BaseAction: &sched.BaseAction{ActionName: name, Registry: reg, PortList: ports},
		srcWindow:  srcWindow,
		srcAttr:    srcAttr,
		dstWindow:  dstWindow,
		dstAttr:    dstAttr,
		numeric:    num,
	}
}

// Declare registers one read port on srcAttr and one write port on
// dstAttr (ports carry no window name). Init resolves the two handles
// directly against the registry rather than through BaseAction.Handle,
// since the source and destination live in different windows.
func (a *TransferAction) Declare(s *sched.Scheduler) error {
	return sched.DeclarePorts(s, a, a.PortList)
}

func (a *TransferAction) Init(t float64) error {
	a.srcHandle = a.Registry.ResolveDataitem(a.srcWindow, a.srcAttr)
	a.dstHandle = a.Registry.ResolveDataitem(a.dstWindow, a.dstAttr)
	return nil
}

func (a *TransferAction) Run(t, dt, alpha float64) error {
	a.numeric.Copy(a.dstHandle, a.srcHandle)
	return nil
}

func (a *TransferAction) Finalize() error { return nil }
