package diag

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/rocstar-hpc/cmoc/sched"
)

// ScheduleReport renders a scheduler's computed run order as a table,
// mirroring the source's register/buffer state dumps: one row per action,
// in the order the scheduler will actually run them.
func ScheduleReport(name string, s *sched.Scheduler) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Action"})
	for i, act := range s.Order() {
		t.AppendRow(table.Row{i, act.Name()})
	}
	return fmt.Sprintf("schedule: %s\n%s", name, t.Render())
}

// ConvergenceRow is one agent's predictor-corrector tolerance state for a
// ToleranceReport.
type ConvergenceRow struct {
	Agent     string
	Attr      string
	RelChange float64
	Tolerance float64
	Converged bool
}

// ToleranceReport renders a predictor-corrector iteration's convergence
// state across all agents/attributes as a table.
func ToleranceReport(rows []ConvergenceRow) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Agent", "Attr", "RelChange", "Tolerance", "Converged"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Agent, r.Attr, r.RelChange, r.Tolerance, r.Converged})
	}
	return t.Render()
}
