package diag_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocstar-hpc/cmoc/diag"
	"github.com/rocstar-hpc/cmoc/sched"
)

type gdlAction struct {
	*sched.BaseAction
}

func (a *gdlAction) Declare(s *sched.Scheduler) error { return sched.DeclarePorts(s, a, a.PortList) }
func (a *gdlAction) Init(t float64) error             { return nil }
func (a *gdlAction) Run(t, dt, alpha float64) error   { return nil }
func (a *gdlAction) Finalize() error                  { return nil }

var _ = Describe("WriteGDL", func() {
	It("emits one node per action and one edge per resolved dependency", func() {
		f := &gdlAction{&sched.BaseAction{ActionName: "F", PortList: []sched.Port{{Attr: "x", Dir: sched.Out}}}}
		g := &gdlAction{&sched.BaseAction{ActionName: "G", PortList: []sched.Port{{Attr: "x", Dir: sched.In}}}}

		s := sched.NewDDGScheduler("top")
		Expect(s.AddAction(f)).To(Succeed())
		Expect(s.AddAction(g)).To(Succeed())
		Expect(s.Schedule()).To(Succeed())

		var buf strings.Builder
		Expect(diag.WriteGDL(&buf, "coupling", s)).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring(`title: "coupling-top"`))
		Expect(out).To(ContainSubstring(`node: { title: "F"`))
		Expect(out).To(ContainSubstring(`node: { title: "G"`))
		Expect(out).To(ContainSubstring(`sourcename: "F" targetname: "G" label: "x,0"`))
	})
})
