package client

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/project-version/internal/config"
	"github.com/oshokin/project-version/internal/logger"
	"github.com/oshokin/project-version/internal/service/common"
)

// Options configures the client request.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// ServerAddress overrides server address from config when specified.
	ServerAddress string
	// Out receives the version. Defaults to os.Stdout.
	Out io.Writer
}

// Run dials the server, fetches the version and prints it.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "get")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Use server address from options if provided, otherwise use config.
	serverAddress := cfg.ServerAddress
	if opts.ServerAddress != "" {
		serverAddress = opts.ServerAddress
	}

	client, err := common.Dial(ctx, serverAddress, common.WithCallTimeout(cfg.CommandTimeout))
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Requesting project version", "server_address", serverAddress)

	version, err := client.GetProjectVersion(ctx)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if _, err = fmt.Fprintln(out, version); err != nil {
		return fmt.Errorf("write version: %w", err)
	}

	return nil
}
