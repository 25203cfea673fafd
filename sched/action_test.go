package sched_test

import (
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocstar-hpc/cmoc/cmocerr"
	"github.com/rocstar-hpc/cmoc/registry"
	"github.com/rocstar-hpc/cmoc/sched"
)

var _ = Describe("BaseAction.Handle", func() {
	var mockCtrl *gomock.Controller
	var reg *MockDataRegistry

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		reg = NewMockDataRegistry(mockCtrl)
	})

	It("resolves a present handle through the registry", func() {
		reg.EXPECT().ResolveDataitem("surf", "temperature").Return(registry.Handle(7))

		b := &sched.BaseAction{
			ActionName: "A",
			Window:     "surf",
			Registry:   reg,
			PortList:   []sched.Port{{Attr: "temperature", Dir: sched.In}},
		}
		h, err := b.Handle(0, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(h).To(Equal(registry.Handle(7)))
	})

	It("fails with MissingDataItemError when a required port is absent", func() {
		reg.EXPECT().ResolveDataitem("surf", "temperature").Return(registry.HandleAbsent)

		b := &sched.BaseAction{
			ActionName: "A",
			Window:     "surf",
			Registry:   reg,
			PortList:   []sched.Port{{Attr: "temperature", Dir: sched.In}},
		}
		_, err := b.Handle(0, false)
		Expect(err).To(HaveOccurred())
		Expect(err).To(BeAssignableToTypeOf(&cmocerr.MissingDataItemError{}))
	})

	It("tolerates an absent optional port", func() {
		reg.EXPECT().ResolveDataitem("surf", "temperature").Return(registry.HandleAbsent)

		b := &sched.BaseAction{
			ActionName: "A",
			Window:     "surf",
			Registry:   reg,
			PortList:   []sched.Port{{Attr: "temperature", Dir: sched.In}},
		}
		h, err := b.Handle(0, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(h).To(Equal(registry.HandleAbsent))
	})
})
