package resolver

import (
	"context"

	domain "github.com/oshokin/project-version/internal/domain/projectversion"
	"github.com/oshokin/project-version/internal/logger"
)

// FileSource reads a version from a configured path.
type FileSource interface {
	Resolve(ctx context.Context, path string) (string, bool)
}

// GitSource renders a version from git metadata.
type GitSource interface {
	Resolve(ctx context.Context, format domain.GitFormat) (string, bool)
}

// Settings is the immutable configuration of one resolution.
type Settings struct {
	// Mode selects the source.
	Mode domain.Mode
	// VersionFilePath is used in file mode.
	VersionFilePath string
	// GitFormat is used in git mode.
	GitFormat domain.GitFormat
}

// Resolver dispatches to a source and writes into the holder.
type Resolver struct {
	// settings selects the source and its parameters.
	settings Settings
	// files serves file mode.
	files FileSource
	// git serves git mode.
	git GitSource
	// holder receives resolved values.
	holder *domain.ProjectVersion
}

// New wires a Resolver from explicit dependencies.
func New(settings Settings, files FileSource, git GitSource, holder *domain.ProjectVersion) *Resolver {
	if holder == nil {
		holder = domain.New()
	}

	return &Resolver{
		settings: settings,
		files:    files,
		git:      git,
		holder:   holder,
	}
}

// Holder returns the holder the resolver writes into.
func (r *Resolver) Holder() *domain.ProjectVersion {
	return r.holder
}

// Settings returns the resolution settings.
func (r *Resolver) Settings() Settings {
	return r.settings
}

// Resolve looks the version up without storing it.
// Unavailable sources are not errors: they simply yield false.
func (r *Resolver) Resolve(ctx context.Context) (string, bool) {
	switch r.settings.Mode {
	case domain.ModeFile:
		if r.files == nil {
			return "", false
		}

		return r.files.Resolve(ctx, r.settings.VersionFilePath)
	case domain.ModeGit:
		if r.git == nil {
			return "", false
		}

		return r.git.Resolve(ctx, r.settings.GitFormat)
	default:
		return "", false
	}
}

// ResolveAndStore resolves the version and stores a non-empty result.
// On an empty result the holder keeps its prior value. It reports whether
// the holder was written.
func (r *Resolver) ResolveAndStore(ctx context.Context) bool {
	ctx = logger.WithKV(ctx, "mode", r.settings.Mode.String())

	value, ok := r.Resolve(ctx)
	if !ok {
		logger.DebugKV(ctx, "Project version source unavailable", "kept", r.holder.Version())
		return false
	}

	if !r.holder.Store(value, r.settings.Mode) {
		logger.DebugKV(ctx, "Resolved project version is blank")
		return false
	}

	logger.DebugKV(ctx, "Project version resolved", "version", r.holder.Version())

	return true
}
