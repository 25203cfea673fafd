// Package diag carries CMOC's ambient diagnostics: custom slog levels for
// the coupling's GDL-style trace output, a fatal-abort helper, and
// go-pretty table renderers that return the scheduling/tolerance reports
// as strings.
package diag

import "log/slog"

// LevelTrace and LevelGDL extend slog's level scale below Info, matching
// the source's distinction between ordinary run logging and the coupling
// diagnostic's GDL (graph description language) step trace.
const (
	LevelTrace slog.Level = slog.LevelInfo - 2
	LevelGDL   slog.Level = slog.LevelInfo - 1
)

// LevelNames maps the custom levels to the labels a slog.HandlerOptions
// ReplaceAttr hook should print in their place.
var LevelNames = map[slog.Level]string{
	LevelTrace: "TRACE",
	LevelGDL:   "GDL",
}

// ReplaceLevelAttr is a slog.HandlerOptions.ReplaceAttr hook that renders
// LevelTrace/LevelGDL with their named labels instead of slog's default
// "INFO-2"/"INFO-1".
func ReplaceLevelAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	if name, ok := LevelNames[level]; ok {
		a.Value = slog.StringValue(name)
	}
	return a
}
