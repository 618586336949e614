//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/project-version/internal/config"
	domain "github.com/oshokin/project-version/internal/domain/projectversion"
	"github.com/oshokin/project-version/internal/logger"
	repository "github.com/oshokin/project-version/internal/repository/state"
	"github.com/oshokin/project-version/internal/resolver"
	"github.com/oshokin/project-version/internal/source/file"
	"github.com/oshokin/project-version/internal/source/git"
	"github.com/oshokin/project-version/internal/sysenv"
)

// Overrides carries command-line replacements for configured values.
// Nil fields keep the configured value.
type Overrides struct {
	// Mode replaces the configured mode.
	Mode *string
	// VersionFilePath replaces the configured version file path.
	VersionFilePath *string
	// GitFormat replaces the configured git format.
	GitFormat *string
}

// Apply writes the overrides into cfg.
func (o Overrides) Apply(cfg *config.Config) error {
	if o.Mode != nil {
		mode, err := domain.ParseMode(*o.Mode)
		if err != nil {
			return fmt.Errorf("mode override: %w", err)
		}

		cfg.Mode = mode
	}

	if o.VersionFilePath != nil {
		cfg.VersionFilePath = *o.VersionFilePath
	}

	if o.GitFormat != nil {
		format, err := domain.ParseGitFormat(*o.GitFormat)
		if err != nil {
			return fmt.Errorf("git format override: %w", err)
		}

		cfg.GitFormat = format
	}

	return nil
}

// Sources bundles the version sources built from configuration.
type Sources struct {
	// Files reads version files.
	Files *file.Reader
	// Git queries the local repository.
	Git *git.Reader
}

// NewSources builds the file and git readers described by cfg.
func NewSources(cfg *config.Config) Sources {
	env := sysenv.New(cfg.DisabledFunctions)

	return Sources{
		Files: file.NewReader(cfg.ProjectRoot, cfg.ExtensionsRoot),
		Git:   git.NewReader(git.NewExecRunner(cfg.CommandTimeout), env, cfg.GitDir),
	}
}

// NewResolver wires a Resolver writing into holder from cfg.
func NewResolver(cfg *config.Config, sources Sources, holder *domain.ProjectVersion) *resolver.Resolver {
	settings := resolver.Settings{
		Mode:            cfg.Mode,
		VersionFilePath: cfg.VersionFilePath,
		GitFormat:       cfg.GitFormat,
	}

	return resolver.New(settings, sources.Files, sources.Git, holder)
}

// NewRepository returns the state repository for cfg, or nil when persistence is disabled.
func NewRepository(cfg *config.Config) repository.Repository {
	if cfg.StateFile == "" {
		return nil
	}

	return repository.NewFileRepository(cfg.StateFile)
}

// Seed restores the last persisted snapshot into holder when it was produced
// by mode. A missing state is silent; an unreadable one is logged and skipped,
// so the next successful resolution overwrites it.
func Seed(ctx context.Context, repo repository.Repository, holder *domain.ProjectVersion, mode domain.Mode) {
	if repo == nil {
		return
	}

	snapshot, err := repo.Load(ctx)

	switch {
	case errors.Is(err, repository.ErrNotFound):
		// Keep empty holder.
	case err != nil:
		logger.WarnKV(ctx, "Ignoring unreadable version state", "error", err)
	case snapshot.Mode != mode:
		logger.DebugKV(ctx, "Ignoring version state from another mode",
			"version", snapshot.Version, "state_mode", snapshot.Mode.String())
	case holder.Restore(snapshot):
		logger.DebugKV(ctx, "Restored project version", "version", snapshot.Version)
	}
}

// Persist saves the holder snapshot when it differs from before.
func Persist(ctx context.Context, repo repository.Repository, before, after domain.Snapshot) error {
	if repo == nil || after.IsZero() {
		return nil
	}

	if before.Version == after.Version && before.Mode == after.Mode {
		return nil
	}

	if err := repo.Save(ctx, after); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}

	logger.DebugKV(ctx, "Persisted project version", "version", after.Version)

	return nil
}

// ResolveWithState seeds holder from state, resolves, and persists a changed result.
func ResolveWithState(
	ctx context.Context,
	cfg *config.Config,
	sources Sources,
	holder *domain.ProjectVersion,
) error {
	repo := NewRepository(cfg)

	Seed(ctx, repo, holder, cfg.Mode)

	before := holder.Snapshot()

	NewResolver(cfg, sources, holder).ResolveAndStore(ctx)

	return Persist(ctx, repo, before, holder.Snapshot())
}
