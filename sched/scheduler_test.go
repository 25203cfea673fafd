package sched_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocstar-hpc/cmoc/cmocerr"
	"github.com/rocstar-hpc/cmoc/sched"
)

type testAction struct {
	*sched.BaseAction
	log *[]string
}

func newTestAction(name string, ports []sched.Port, log *[]string) *testAction {
	return &testAction{
		BaseAction: &sched.BaseAction{ActionName: name, PortList: ports},
		log:        log,
	}
}

func (a *testAction) Declare(s *sched.Scheduler) error {
	return sched.DeclarePorts(s, a, a.PortList)
}
func (a *testAction) Init(t float64) error { return nil }
func (a *testAction) Run(t, dt, alpha float64) error {
	*a.log = append(*a.log, a.Name())
	return nil
}
func (a *testAction) Finalize() error {
	*a.log = append(*a.log, "finalize:"+a.Name())
	return nil
}

var _ = Describe("UserScheduler", func() {
	It("orders a linear chain F -> G by insertion order", func() {
		var log []string
		f := newTestAction("F", []sched.Port{{Attr: "f", Dir: sched.Out}}, &log)
		g := newTestAction("G", []sched.Port{{Attr: "f", Dir: sched.In}}, &log)

		s := sched.NewUserScheduler("top")
		Expect(s.AddAction(f)).To(Succeed())
		Expect(s.AddAction(g)).To(Succeed())
		Expect(s.Schedule()).To(Succeed())

		order := s.Order()
		Expect(order).To(HaveLen(2))
		Expect(order[0].Name()).To(Equal("F"))
		Expect(order[1].Name()).To(Equal("G"))

		Expect(s.InitActions(1)).To(Succeed())
		Expect(s.RunActions(1, 0.1)).To(Succeed())
		Expect(log).To(Equal([]string{"F", "G"}))
	})
})

var _ = Describe("DDGScheduler", func() {
	It("linearises a diamond with A first and D last", func() {
		var log []string
		a := newTestAction("A", []sched.Port{
			{Attr: "b", Dir: sched.Out},
			{Attr: "c", Dir: sched.Out},
		}, &log)
		b := newTestAction("B", []sched.Port{
			{Attr: "b", Dir: sched.In},
			{Attr: "d", Dir: sched.Out},
		}, &log)
		c := newTestAction("C", []sched.Port{
			{Attr: "c", Dir: sched.InOut},
			{Attr: "e", Dir: sched.Out},
		}, &log)
		d := newTestAction("D", []sched.Port{
			{Attr: "d", Dir: sched.In},
			{Attr: "e", Dir: sched.In},
		}, &log)

		s := sched.NewDDGScheduler("diamond")
		Expect(s.AddAction(a)).To(Succeed())
		Expect(s.AddAction(b)).To(Succeed())
		Expect(s.AddAction(c)).To(Succeed())
		Expect(s.AddAction(d)).To(Succeed())
		Expect(s.Schedule()).To(Succeed())

		order := s.Order()
		names := make([]string, len(order))
		for i, item := range order {
			names[i] = item.Name()
		}
		Expect(names[0]).To(Equal("A"))
		Expect(names[3]).To(Equal("D"))
		Expect(names[1:3]).To(ConsistOf("B", "C"))
	})

	It("fails with CycleDetected on a 2-cycle", func() {
		x := newTestAction("X", []sched.Port{
			{Attr: "y", Dir: sched.In},
			{Attr: "x", Dir: sched.Out},
		}, new([]string))
		y := newTestAction("Y", []sched.Port{
			{Attr: "x", Dir: sched.In},
			{Attr: "y", Dir: sched.Out},
		}, new([]string))

		s := sched.NewDDGScheduler("cycle")
		Expect(s.AddAction(x)).To(Succeed())
		Expect(s.AddAction(y)).To(Succeed())

		err := s.Schedule()
		Expect(err).To(HaveOccurred())
		var schedErr *cmocerr.SchedulingError
		Expect(err).To(BeAssignableToTypeOf(schedErr))
		Expect(err.(*cmocerr.SchedulingError).Kind).To(Equal(cmocerr.CycleDetected))
	})

	It("schedules and runs two disjoint components", func() {
		var log []string
		f := newTestAction("F", []sched.Port{{Attr: "f", Dir: sched.Out}}, &log)
		g := newTestAction("G", []sched.Port{{Attr: "f", Dir: sched.In}}, &log)
		i := newTestAction("I", []sched.Port{{Attr: "i", Dir: sched.Out}}, &log)
		h := newTestAction("H", []sched.Port{{Attr: "i", Dir: sched.In}}, &log)

		s := sched.NewDDGScheduler("disjoint")
		for _, act := range []sched.Action{f, g, i, h} {
			Expect(s.AddAction(act)).To(Succeed())
		}
		Expect(s.Schedule()).To(Succeed())
		Expect(s.InitActions(0)).To(Succeed())
		Expect(s.RunActions(0, 1)).To(Succeed())

		Expect(log).To(ContainElements("F", "G", "I", "H"))
	})

	It("rejects a second Schedule call", func() {
		f := newTestAction("F", nil, new([]string))
		s := sched.NewDDGScheduler("once")
		Expect(s.AddAction(f)).To(Succeed())
		Expect(s.Schedule()).To(Succeed())
		Expect(s.Schedule()).To(HaveOccurred())
	})

	It("InitActions is a no-op on the second call unless Restarting", func() {
		var initCount int
		f := &countingInitAction{BaseAction: &sched.BaseAction{ActionName: "F"}, count: &initCount}
		s := sched.NewDDGScheduler("init-idem")
		Expect(s.AddAction(f)).To(Succeed())
		Expect(s.Schedule()).To(Succeed())

		Expect(s.InitActions(0)).To(Succeed())
		Expect(s.InitActions(0)).To(Succeed())
		Expect(initCount).To(Equal(1))

		s.Restarting(0)
		Expect(s.InitActions(0)).To(Succeed())
		Expect(initCount).To(Equal(2))
	})
})

type countingInitAction struct {
	*sched.BaseAction
	count *int
}

func (a *countingInitAction) Declare(s *sched.Scheduler) error {
	return sched.DeclarePorts(s, a, a.PortList)
}
func (a *countingInitAction) Init(t float64) error { *a.count++; return nil }
func (a *countingInitAction) Run(t, dt, alpha float64) error { return nil }
func (a *countingInitAction) Finalize() error { return nil }
