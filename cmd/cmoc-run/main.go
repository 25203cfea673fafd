// Command cmoc-run loads a coupling configuration and drives it to
// completion, the CLI entry point analogue of the teacher's
// samples/*/main.go driver programs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tebeka/atexit"

	"github.com/rocstar-hpc/cmoc/coupling"
	"github.com/rocstar-hpc/cmoc/diag"
	"github.com/rocstar-hpc/cmoc/registry"
	"github.com/rocstar-hpc/cmoc/schemes"
)

func main() {
	configPath := flag.String("config", "cmoc.yaml", "path to the coupling configuration file")
	scheme := flag.String("scheme", "solid-alone", "named coupling scheme: solid-alone | solid-fluid-spc")
	flag.Parse()

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: diag.ReplaceLevelAttr,
	})
	slog.SetDefault(slog.New(handler))

	cfg, err := coupling.LoadConfig(*configPath)
	if err != nil {
		diag.Abort(fmt.Errorf("loading config %s: %w", *configPath, err))
	}

	reg := registry.NewMemRegistry()
	num := registry.NewMemNumericLib()
	loader := registry.NewStubModuleLoader()

	var c *coupling.Coupling
	switch *scheme {
	case "solid-alone":
		c, err = schemes.NewSolidAlone(reg, loader, num)
	case "solid-fluid-spc":
		c, err = schemes.NewSolidFluidSPC(reg, loader, num)
	default:
		diag.Abort(fmt.Errorf("unknown scheme %q", *scheme))
	}
	if err != nil {
		diag.Abort(fmt.Errorf("building scheme %s: %w", *scheme, err))
	}

	c.RestartPath = cfg.RestartPath
	c.MaxPredCorr = cfg.MaxPredCorr
	if c.MaxPredCorr == 0 {
		c.MaxPredCorr = 1
	}

	atexit.Register(func() {
		if err := c.WriteRestartInfo(cfg.TimeStart, 0); err != nil {
			slog.Error("restart flush failed", slog.Any("error", err))
		}
	})

	step, startTime, readErr := c.ReadRestartInfo(cfg.TimeStart)
	if readErr != nil && cfg.TimeStart != 0 {
		diag.Abort(readErr)
	}
	if cfg.TimeStart == 0 {
		startTime = cfg.TimeStart
	}

	if err := c.Init(startTime, cfg.DtInitial, cfg.TimeStart != 0); err != nil {
		diag.Abort(err)
	}

	t, dt := startTime, cfg.DtInitial
	for t < cfg.TimeEnd {
		c.InitConvergence(0)
		var err error
		t, err = c.Run(t, dt, 0, 0)
		if err != nil {
			diag.Abort(err)
		}
		step++
		slog.Log(context.Background(), diag.LevelTrace, "step complete", slog.Int("step", step), slog.Float64("t", t))

		if err := c.WriteRestartInfo(t, step); err != nil {
			slog.Error("restart write failed", slog.Any("error", err))
		}
	}

	if err := c.Finalize(false); err != nil {
		diag.Abort(err)
	}

	atexit.Exit(0)
}
