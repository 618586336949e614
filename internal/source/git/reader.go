package git

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/oshokin/project-version/internal/domain/projectversion"
	"github.com/oshokin/project-version/internal/logger"
	"github.com/oshokin/project-version/internal/sysenv"
)

// binary is the git executable looked up on PATH.
const binary = "git"

//nolint:gochecknoglobals // Fixed argument lists of the three git queries.
var (
	branchArgs   = []string{"rev-parse", "--abbrev-ref", "HEAD"}
	revisionArgs = []string{"rev-parse", "--short", "HEAD"}
	tagArgs      = []string{"describe", "--tags"}
)

// AvailabilityChecker tells whether a runtime function may be used.
type AvailabilityChecker interface {
	IsFunctionDisabled(name string) bool
}

// Components are the raw values returned by the git queries.
// An empty field means the query failed or printed nothing.
type Components struct {
	Branch   string
	Revision string
	Tag      string
}

// Reader queries a local repository and renders its version.
type Reader struct {
	// runner executes git.
	runner Runner
	// env guards process execution.
	env AvailabilityChecker
	// dir is the working directory for every git call.
	dir string
}

// NewReader creates a Reader running git in dir.
func NewReader(runner Runner, env AvailabilityChecker, dir string) *Reader {
	return &Reader{
		runner: runner,
		env:    env,
		dir:    dir,
	}
}

// Resolve renders the version for format. Only the components the format
// needs are queried. It returns false when process execution is disabled,
// the format is unknown, or any required component is empty.
func (r *Reader) Resolve(ctx context.Context, format domain.GitFormat) (string, bool) {
	ctx = logger.WithKV(ctx, "git_format", format.String())

	if !format.Valid() {
		logger.DebugKV(ctx, "Unknown git format")
		return "", false
	}

	if r.execDisabled() {
		logger.DebugKV(ctx, "Process execution is disabled, skipping git")
		return "", false
	}

	var components Components

	if needsRevision(format) {
		if components.Revision = r.query(ctx, revisionArgs); components.Revision == "" {
			return "", false
		}
	}

	if needsBranch(format) {
		if components.Branch = r.query(ctx, branchArgs); components.Branch == "" {
			return "", false
		}
	}

	if needsTag(format) {
		if components.Tag = r.query(ctx, tagArgs); components.Tag == "" {
			return "", false
		}
	}

	return Format(components, format)
}

// Describe runs all three queries. It returns empty components when process
// execution is disabled.
func (r *Reader) Describe(ctx context.Context) Components {
	if r.execDisabled() {
		logger.DebugKV(ctx, "Process execution is disabled, skipping git")
		return Components{}
	}

	return Components{
		Branch:   r.query(ctx, branchArgs),
		Revision: r.query(ctx, revisionArgs),
		Tag:      r.query(ctx, tagArgs),
	}
}

// Format renders components according to format.
// It returns false if a component required by the format is empty.
func Format(c Components, format domain.GitFormat) (string, bool) {
	var result string

	switch format {
	case domain.FormatRevision:
		result = c.Revision
	case domain.FormatBranch:
		result = c.Branch
	case domain.FormatTag:
		result = c.Tag
	case domain.FormatRevisionBranch:
		if c.Revision == "" || c.Branch == "" {
			return "", false
		}

		result = fmt.Sprintf("%s (%s)", c.Revision, c.Branch)
	case domain.FormatRevisionTag:
		if c.Revision == "" || c.Tag == "" {
			return "", false
		}

		result = fmt.Sprintf("%s (%s)", c.Revision, c.Tag)
	default:
		return "", false
	}

	return result, result != ""
}

// query runs one git command and returns the first line of its output.
func (r *Reader) query(ctx context.Context, args []string) string {
	stdout, exitCode, err := r.runner.Run(ctx, r.dir, binary, args...)
	if err != nil {
		logger.DebugKV(ctx, "Git command unavailable", "args", args, "error", err)
		return ""
	}

	if exitCode != 0 {
		logger.DebugKV(ctx, "Git command failed", "args", args, "exit_code", exitCode)
		return ""
	}

	return firstLine(stdout)
}

// execDisabled reports whether the environment forbids spawning processes.
func (r *Reader) execDisabled() bool {
	return r.env != nil && r.env.IsFunctionDisabled(sysenv.FunctionExec)
}

// firstLine returns the first line of s without surrounding whitespace.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}

	return strings.TrimSpace(s)
}

func needsRevision(format domain.GitFormat) bool {
	return format == domain.FormatRevision ||
		format == domain.FormatRevisionBranch ||
		format == domain.FormatRevisionTag
}

func needsBranch(format domain.GitFormat) bool {
	return format == domain.FormatBranch || format == domain.FormatRevisionBranch
}

func needsTag(format domain.GitFormat) bool {
	return format == domain.FormatTag || format == domain.FormatRevisionTag
}
