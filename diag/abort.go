package diag

import (
	"context"
	"log/slog"

	"github.com/tebeka/atexit"
)

// exitFunc is overridden in tests so Abort's exit path is exercisable
// without killing the test binary.
var exitFunc = atexit.Exit

// Abort logs err at slog.LevelError and terminates the process through
// atexit, so any exit hooks registered elsewhere in the run (such as
// cmoc-run's restart-file flush) still fire.
func Abort(err error) {
	slog.Log(context.Background(), slog.LevelError, "aborting", slog.Any("error", err))
	exitFunc(1)
}
