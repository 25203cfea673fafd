package coupling_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocstar-hpc/cmoc/agent"
	"github.com/rocstar-hpc/cmoc/coupling"
	"github.com/rocstar-hpc/cmoc/registry"
)

func newTestAgent(name string) *agent.Agent {
	reg := registry.NewMemRegistry()
	num := registry.NewMemNumericLib()
	module := &fakeModule{surfWindow: name + "_surf", volWindow: name + "_vol"}
	a, err := agent.NewAgent(name, reg, newFakeLoader(), num, module, "lib.so", name+"_surf", name+"_vol")
	Expect(err).NotTo(HaveOccurred())
	return a
}

var _ = Describe("Coupling", func() {
	It("stamps a non-empty RunID at construction", func() {
		c := coupling.New("demo", nil)
		Expect(c.RunID).NotTo(BeEmpty())
	})

	It("rejects adding the same agent name twice", func() {
		c := coupling.New("demo", nil)
		Expect(c.AddAgent(newTestAgent("solid"))).To(Succeed())
		Expect(c.AddAgent(newTestAgent("solid"))).To(HaveOccurred())
	})

	It("schedules the coupling-level init and runtime schedulers", func() {
		c := coupling.New("demo", nil)
		Expect(c.AddAgent(newTestAgent("solid"))).To(Succeed())
		Expect(c.AddAgent(newTestAgent("fluid"))).To(Succeed())
		Expect(c.Schedule()).To(Succeed())
	})

	It("lets Init schedule each agent's own sub-schedulers without double-scheduling", func() {
		c := coupling.New("demo", nil)
		Expect(c.AddAgent(newTestAgent("solid"))).To(Succeed())
		Expect(c.Init(0, 0.1, false)).To(Succeed())
		Expect(c.Init(0, 0.1, false).Error()).To(ContainSubstring("AlreadyScheduled"))
	})

	It("inits every agent and runs the init scheduler at alpha=0", func() {
		c := coupling.New("demo", nil)
		Expect(c.AddAgent(newTestAgent("solid"))).To(Succeed())
		Expect(c.Init(0, 0.1, false)).To(Succeed())
	})

	It("clamps dt to the minimum agent MaxTimestep during Run", func() {
		c := coupling.New("demo", nil)
		a := newTestAgent("solid")
		a.Spec = &fakeSpec{maxDt: 0.05}
		Expect(c.AddAgent(a)).To(Succeed())
		Expect(c.Init(0, 0.1, false)).To(Succeed())

		tNext, err := c.Run(0, 0.1, 0, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(tNext).To(BeNumerically("~", 0.05, 1e-9))
	})

	It("scales the time advance by zoom, defaulting to 1 when zoom<=0", func() {
		c := coupling.New("demo", nil)
		Expect(c.AddAgent(newTestAgent("solid"))).To(Succeed())
		Expect(c.Init(0, 0.1, false)).To(Succeed())

		t1, err := c.Run(0, 0.1, 0, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(t1).To(BeNumerically("~", 0.2, 1e-9))

		t2, err := c.Run(0, 0.1, 0, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(t2).To(BeNumerically("~", 0.1, 1e-9))
	})

	It("short-circuits CheckConvergence true when MaxPredCorr is 1", func() {
		c := coupling.New("demo", nil)
		Expect(c.AddAgent(newTestAgent("solid"))).To(Succeed())
		Expect(c.CheckConvergence()).To(BeTrue())
	})

	It("finalizes every agent", func() {
		c := coupling.New("demo", nil)
		Expect(c.AddAgent(newTestAgent("solid"))).To(Succeed())
		Expect(c.Init(0, 0.1, false)).To(Succeed())
		Expect(c.Finalize(false)).To(Succeed())
	})
})

var _ = Describe("SingleRank", func() {
	It("reports rank 0 of size 1", func() {
		var m coupling.MPI = coupling.SingleRank{}
		Expect(m.CommRank()).To(Equal(0))
		Expect(m.CommSize()).To(Equal(1))
	})
})
