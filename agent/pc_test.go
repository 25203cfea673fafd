package agent_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocstar-hpc/cmoc/agent"
	"github.com/rocstar-hpc/cmoc/registry"
)

var _ = Describe("predictor-corrector store/restore", func() {
	var (
		reg *registry.MemRegistry
		num *registry.MemNumericLib
		a   *agent.Agent
		v   registry.Handle
		bak registry.Handle
	)

	BeforeEach(func() {
		reg = registry.NewMemRegistry()
		num = registry.NewMemNumericLib()
		module := &fakeModule{surfWindow: "surf", volWindow: "vol"}
		var err error
		a, err = agent.NewAgent("solid", reg, newFakeLoader(), num, module, "lib", "surf", "vol")
		Expect(err).NotTo(HaveOccurred())

		a.RegisterNewDataitem("", "v", registry.Node)
		a.RegisterCloneDataitem("", "v_bak", "", "v")
		Expect(a.CreateRegisteredDataitems("surf")).To(Succeed())

		v = reg.ResolveDataitem("surf", "v")
		bak = reg.ResolveDataitem("surf", "v_bak")
		num.Set(v, 1.0)
		num.Set(bak, 1.0)
		a.RegisterPC("v", v, bak, 1e-6)
	})

	It("converges when live equals backup and leaves both unchanged", func() {
		Expect(a.CheckConvergence()).To(BeTrue())
		a.StoreSolutions(true)
		Expect(num.Get(v)).To(Equal(1.0))
		Expect(num.Get(bak)).To(Equal(1.0))
	})

	It("reports non-convergence past tolerance", func() {
		num.Set(v, 1.2)
		Expect(a.CheckConvergence()).To(BeFalse())
	})

	It("restores the last converged snapshot when not converged", func() {
		num.Set(v, 1.0)
		num.Set(bak, 1.0)
		a.StoreSolutions(true) // snapshot v=1.0 into backup

		num.Set(v, 42.0) // a later, unconverged iterate
		a.StoreSolutions(false)

		Expect(num.Get(v)).To(Equal(1.0))
	})

	It("treats a zero-norm live value as converged only when the diff is exactly zero", func() {
		num.Set(v, 0)
		num.Set(bak, 0)
		Expect(a.CheckConvergence()).To(BeTrue())

		num.Set(bak, 1e-9)
		Expect(a.CheckConvergence()).To(BeFalse())
	})

	It("gates on the Specialization's own convergence check too", func() {
		spec := &fakeSpec{convergent: false}
		a.Spec = spec
		Expect(a.CheckConvergence()).To(BeFalse())

		spec.convergent = true
		Expect(a.CheckConvergence()).To(BeTrue())
	})
})
