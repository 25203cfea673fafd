package coupling_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rocstar-hpc/cmoc/coupling"
)

var _ = Describe("LoadConfig", func() {
	It("parses a YAML config file into a Config", func() {
		const doc = `
name: demo
restart_path: /tmp/demo.restart
time_start: 0
time_end: 1.5
dt_initial: 0.01
max_pred_corr: 3
agents:
  - name: solid
    module_library: libsolid.so
    surface_window: solid_surf
    volume_window: solid_vol
  - name: fluid
    module_library: libfluid.so
    surface_window: fluid_surf
    volume_window: fluid_vol
`
		f, err := os.CreateTemp("", "cmoc-config-*.yaml")
		Expect(err).NotTo(HaveOccurred())
		defer os.Remove(f.Name())
		_, err = f.WriteString(doc)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Close()).To(Succeed())

		cfg, err := coupling.LoadConfig(f.Name())
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Name).To(Equal("demo"))
		Expect(cfg.MaxPredCorr).To(Equal(3))
		Expect(cfg.Agents).To(HaveLen(2))
		Expect(cfg.Agents[0].Name).To(Equal("solid"))
		Expect(cfg.Agents[1].ModuleLibrary).To(Equal("libfluid.so"))
	})

	It("fails on a missing file", func() {
		_, err := coupling.LoadConfig("/nonexistent/path.yaml")
		Expect(err).To(HaveOccurred())
	})
})
