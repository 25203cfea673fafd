package coupling

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rocstar-hpc/cmoc/cmocerr"
)

// ReadRestartInfo reads the coupling's restart-info file and returns the
// last "<step> <time>" record, last-record-wins. It is only meaningful
// when the caller intends to resume from t != 0; a missing file at that
// point is fatal, matching the source's restart contract.
func (c *Coupling) ReadRestartInfo(t float64) (step int, time float64, err error) {
	if t == 0 {
		return 0, 0, nil
	}

	f, openErr := os.Open(c.RestartPath)
	if openErr != nil {
		return 0, 0, &cmocerr.RestartError{Path: c.RestartPath, Err: openErr}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	found := false
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var s int
		var tm float64
		if _, scanErr := fmt.Sscanf(line, "%d %g", &s, &tm); scanErr != nil {
			continue
		}
		step, time = s, tm
		found = true
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return 0, 0, &cmocerr.RestartError{Path: c.RestartPath, Err: scanErr}
	}
	if !found {
		return 0, 0, &cmocerr.RestartError{Path: c.RestartPath, Err: fmt.Errorf("no records in restart file")}
	}
	return step, time, nil
}

// WriteRestartInfo appends one "<step> <time>" record to the restart-info
// file, truncating it first when t == 0. Only the MPI rank-0 process
// writes; every other rank is a silent no-op.
func (c *Coupling) WriteRestartInfo(t float64, step int) error {
	if c.MPI.CommRank() != 0 {
		return nil
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if t == 0 {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}

	f, err := os.OpenFile(c.RestartPath, flags, 0644)
	if err != nil {
		return &cmocerr.RestartError{Path: c.RestartPath, Err: err}
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d %g\n", step, t); err != nil {
		return &cmocerr.RestartError{Path: c.RestartPath, Err: err}
	}
	return nil
}
