package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levelCore pins a wrapped core to its own minimum level,
// ignoring the package-wide atomic level.
type levelCore struct {
	zapcore.Core

	min zapcore.Level
}

// Enabled reports whether entries at l pass the pinned level.
func (c *levelCore) Enabled(l zapcore.Level) bool {
	return c.min.Enabled(l)
}

// Check registers the core for entries at or above the pinned level.
//
//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *levelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(ent.Level) {
		return ce
	}

	return ce.AddCore(ent, c)
}

// With keeps the pinned level on derived cores.
//
//nolint:ireturn,nolintlint // Returning zapcore.Core is intended for zap integration.
func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{Core: c.Core.With(fields), min: c.min}
}

// WithLevel pins the built logger to lvl. The CLI uses it for --quiet.
//
//nolint:ireturn,nolintlint // Returning zap.Option is intended for zap integration.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &levelCore{Core: core, min: lvl}
	})
}
