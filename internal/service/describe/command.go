package describe

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/oshokin/project-version/internal/config"
	domain "github.com/oshokin/project-version/internal/domain/projectversion"
	"github.com/oshokin/project-version/internal/logger"
	"github.com/oshokin/project-version/internal/service/common"
	"github.com/oshokin/project-version/internal/source/git"
)

// unavailable marks a value that could not be resolved.
const unavailable = "-"

// Options controls the describe command.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Overrides replace configured source settings.
	Overrides common.Overrides
	// Out receives the table. Defaults to os.Stdout.
	Out io.Writer
}

// Run loads configuration and renders the table.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "describe")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if err = opts.Overrides.Apply(cfg); err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	Render(ctx, out, cfg, common.NewSources(cfg))

	return nil
}

// Render writes the table for cfg using sources.
func Render(ctx context.Context, out io.Writer, cfg *config.Config, sources common.Sources) {
	components := sources.Git.Describe(ctx)
	fileVersion, _ := sources.Files.Resolve(ctx, cfg.VersionFilePath)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Source", "Value", "Active"})

	t.AppendRow(table.Row{"git branch", orUnavailable(components.Branch), ""})
	t.AppendRow(table.Row{"git revision", orUnavailable(components.Revision), ""})
	t.AppendRow(table.Row{"git tag", orUnavailable(components.Tag), ""})
	t.AppendSeparator()

	for _, format := range domain.GitFormats() {
		value, _ := git.Format(components, format)
		active := cfg.Mode == domain.ModeGit && cfg.GitFormat == format

		t.AppendRow(table.Row{"format " + format.String(), orUnavailable(value), marker(active)})
	}

	t.AppendSeparator()
	t.AppendRow(table.Row{
		"file " + cfg.VersionFilePath,
		orUnavailable(fileVersion),
		marker(cfg.Mode == domain.ModeFile),
	})

	t.SetStyle(table.StyleRounded)
	t.Render()
}

// orUnavailable replaces empty values with a placeholder.
func orUnavailable(value string) string {
	if value == "" {
		return unavailable
	}

	return value
}

// marker renders the active flag.
func marker(active bool) string {
	if active {
		return "*"
	}

	return ""
}
