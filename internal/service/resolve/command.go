package resolve

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/project-version/internal/config"
	domain "github.com/oshokin/project-version/internal/domain/projectversion"
	"github.com/oshokin/project-version/internal/logger"
	"github.com/oshokin/project-version/internal/service/common"
)

// Options controls a single resolution run.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Overrides replace configured source settings.
	Overrides common.Overrides
	// Out receives the resolved version. Defaults to os.Stdout.
	Out io.Writer
}

// Run loads configuration, resolves the version and prints it.
// An unavailable source prints an empty line; it is not an error.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "resolve")

	holder, err := Resolve(ctx, opts)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if _, err = fmt.Fprintln(out, holder.Version()); err != nil {
		return fmt.Errorf("write version: %w", err)
	}

	return nil
}

// Resolve performs the resolution and returns the populated holder.
func Resolve(ctx context.Context, opts *Options) (*domain.ProjectVersion, error) {
	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if err = opts.Overrides.Apply(cfg); err != nil {
		return nil, err
	}

	holder := domain.New()

	if err = common.ResolveWithState(ctx, cfg, common.NewSources(cfg), holder); err != nil {
		return nil, err
	}

	if version := holder.Version(); version != "" {
		logger.DebugKV(ctx, "Project version", "version", version, "mode", cfg.Mode.String())
	} else {
		logger.DebugKV(ctx, "No project version available", "mode", cfg.Mode.String())
	}

	return holder, nil
}
