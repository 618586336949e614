package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/project-version/internal/config"
	"github.com/oshokin/project-version/internal/logger"
	"github.com/oshokin/project-version/internal/service/client"
	"github.com/oshokin/project-version/internal/service/common"
	"github.com/oshokin/project-version/internal/service/describe"
	"github.com/oshokin/project-version/internal/service/resolve"
	"github.com/oshokin/project-version/internal/service/server"
	"github.com/oshokin/project-version/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level when set.
	logLevel string
	// quiet limits logging to errors.
	quiet bool
	// modeOverride replaces the configured mode.
	modeOverride string
	// pathOverride replaces the configured version file path.
	pathOverride string
	// formatOverride replaces the configured git format.
	formatOverride string

	// errUnknownLogLevel is returned for an unparsable --log-level value.
	errUnknownLogLevel = errors.New("unknown log level")

	// rootCmd resolves and prints the project version.
	rootCmd = &cobra.Command{
		Use:   "project-version",
		Short: "Resolve the project version from a VERSION file or git metadata.",
		Long: `Resolves the current project version: a release tag, branch name or revision hash.

In file mode the version is read from a file; a directory path gets VERSION appended
and EXT:<key>/ paths are expanded against the configured extensions root.
In git mode the branch, abbreviated revision and nearest tag are queried and combined
according to the git format (revision, revision_branch, revision_tag, branch, tag).

An unavailable source is not an error: the previous version, if any, is kept and an
empty line is printed when nothing is known.

Environment:
  PROJECT_VERSION_<KEY>                overrides a configuration key, e.g.
                                       PROJECT_VERSION_DISABLED_FUNCTIONS=exec replaces disabled_functions.
  PROJECT_VERSION_DISABLE_FUNCTIONS    host-level restriction list, checked in addition to
                                       disabled_functions on every call.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE:              runResolve,
	}

	// resolveCmd is the explicit form of the root command.
	resolveCmd = &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the project version and print it.",
		Args:  cobra.NoArgs,
		RunE:  runResolve,
	}

	// describeCmd prints every source and format as a table.
	describeCmd = &cobra.Command{
		Use:   "describe",
		Short: "Show git components and the version each format would produce.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return describe.Run(cmd.Context(), &describe.Options{
				ConfigPath: configPath,
				Overrides:  overrides(cmd),
				Out:        cmd.OutOrStdout(),
			})
		},
	}

	// serveCmd serves the resolved version over gRPC.
	serveCmd = &cobra.Command{
		Use:   "serve [listen-address]",
		Short: "Resolve the project version once and serve it over gRPC.",
		Long: `Resolves the project version at startup and serves it through the
projectversion.v1.ProjectVersionService gRPC API and the standard health service.

The listen address defaults to server_addr from the configuration file and can be
overridden by the argument (e.g. :9090, 0.0.0.0:50061).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			return server.Run(ctx, &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				Overrides:     overrides(cmd),
			})
		},
	}

	// getCmd queries a running version server.
	getCmd = &cobra.Command{
		Use:   "get [server-address]",
		Short: "Print the project version held by a running server.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var serverAddress string
			if len(args) > 0 {
				serverAddress = args[0]
			}

			return client.Run(cmd.Context(), &client.Options{
				ConfigPath:    configPath,
				ServerAddress: serverAddress,
				Out:           cmd.OutOrStdout(),
			})
		},
	}
)

// Execute runs the project-version CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// runResolve is shared by the root and resolve commands.
func runResolve(cmd *cobra.Command, _ []string) error {
	return resolve.Run(cmd.Context(), &resolve.Options{
		ConfigPath: configPath,
		Overrides:  overrides(cmd),
		Out:        cmd.OutOrStdout(),
	})
}

// overrides collects the source flags the user actually set.
func overrides(cmd *cobra.Command) common.Overrides {
	var result common.Overrides

	flags := cmd.Flags()

	if flags.Changed("mode") {
		result.Mode = &modeOverride
	}

	if flags.Changed("path") {
		result.VersionFilePath = &pathOverride
	}

	if flags.Changed("format") {
		result.GitFormat = &formatOverride
	}

	return result
}

// setupLogging applies --quiet, --log-level or the configured log level.
func setupLogging(_ *cobra.Command, _ []string) error {
	if quiet {
		logger.SetLogger(logger.New(nil, logger.WithLevel(zapcore.ErrorLevel)))

		return nil
	}

	level := logLevel
	if level == "" {
		// Configuration errors are reported by the command itself.
		if cfg, err := config.Load(configPath); err == nil {
			level = cfg.LogLevel
		}
	}

	if level == "" {
		return nil
	}

	parsed, ok := logger.ParseLogLevel(level)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, level)
	}

	logger.SetLevel(parsed)

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides log_level")
	flags.BoolVarP(&quiet, "quiet", "q", false, "log errors only")
	flags.StringVarP(&modeOverride, "mode", "m", "", "version source: file or git")
	flags.StringVarP(&pathOverride, "path", "p", "", "version file or directory, EXT:<key>/ paths allowed")
	flags.StringVarP(&formatOverride, "format", "f", "", "git format: revision, revision_branch, revision_tag, branch, tag")

	rootCmd.AddCommand(resolveCmd, describeCmd, serveCmd, getCmd)
}
