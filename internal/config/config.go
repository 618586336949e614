package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	domain "github.com/oshokin/project-version/internal/domain/projectversion"
)

// Config holds the settings shared by the project-version commands.
type Config struct {
	// Mode selects the version source.
	Mode domain.Mode `mapstructure:"mode" yaml:"mode"`
	// VersionFilePath points to the version file or its directory in file mode.
	VersionFilePath string `mapstructure:"version_file_path" yaml:"version_file_path"`
	// GitFormat selects which git components make up the version in git mode.
	GitFormat domain.GitFormat `mapstructure:"git_format" yaml:"git_format"`
	// ProjectRoot anchors relative version file paths.
	ProjectRoot string `mapstructure:"project_root" yaml:"project_root"`
	// ExtensionsRoot anchors EXT:<key>/ version file paths.
	ExtensionsRoot string `mapstructure:"extensions_root" yaml:"extensions_root,omitempty"`
	// GitDir is the working directory for git commands. Defaults to ProjectRoot.
	GitDir string `mapstructure:"git_dir" yaml:"git_dir,omitempty"`
	// CommandTimeout bounds every external command.
	CommandTimeout time.Duration `mapstructure:"command_timeout" yaml:"command_timeout"`
	// DisabledFunctions lists runtime functions that must not be used, e.g. "exec".
	DisabledFunctions []string `mapstructure:"disabled_functions" yaml:"disabled_functions,omitempty"`
	// StateFile persists the last resolved version. Empty disables persistence.
	StateFile string `mapstructure:"state_file" yaml:"state_file,omitempty"`
	// ServerAddress is the gRPC address served by `serve` and dialed by `get`.
	ServerAddress string `mapstructure:"server_addr" yaml:"server_addr"`
	// LogLevel is the minimum level of emitted log messages.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "project-version.yaml"

	// DefaultVersionFilePath is the version file looked up in file mode.
	DefaultVersionFilePath = "VERSION"

	// DefaultServerAddress is the default gRPC address.
	DefaultServerAddress = "127.0.0.1:50061"

	// DefaultTimeout is the default duration for external commands and RPC calls.
	DefaultTimeout = 5 * time.Second

	// DefaultLogLevel is the default minimum log level.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for written files.
	DefaultFilePermissions = 0o600

	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "PROJECT_VERSION"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeTimeout is returned for a negative command timeout.
	errNegativeTimeout = errors.New("command timeout must not be negative")
)

// Default returns settings with every default applied.
func Default() *Config {
	return &Config{
		Mode:            domain.ModeFile,
		VersionFilePath: DefaultVersionFilePath,
		GitFormat:       domain.FormatRevision,
		ProjectRoot:     ".",
		CommandTimeout:  DefaultTimeout,
		ServerAddress:   DefaultServerAddress,
		LogLevel:        DefaultLogLevel,
	}
}

// Load reads configuration from the provided path, applies PROJECT_VERSION_*
// environment overrides and validates the result.
// A missing file at the default path is not an error: defaults are used instead.
func Load(path string) (*Config, error) {
	optional := path == "" || path == DefaultConfigFilename
	if path == "" {
		path = DefaultConfigFilename
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setViperDefaults(v, Default())

	path = filepath.Clean(path)

	_, err := os.Stat(path)

	switch {
	case err == nil:
		v.SetConfigFile(path)

		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	case optional && errors.Is(err, os.ErrNotExist):
		// Defaults and environment only.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	decoderOpt := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))

	var cfg Config
	if err = v.Unmarshal(&cfg, decoderOpt); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in derived defaults.
// An empty VersionFilePath is kept as is: it resolves to no version.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if !settings.Mode.Valid() {
		return fmt.Errorf("invalid mode: %w", domain.ErrUnknownMode)
	}

	if !settings.GitFormat.Valid() {
		return fmt.Errorf("invalid git format: %w", domain.ErrUnknownGitFormat)
	}

	if settings.CommandTimeout < 0 {
		return errNegativeTimeout
	}

	// Set default timeout if not specified
	if settings.CommandTimeout == 0 {
		settings.CommandTimeout = DefaultTimeout
	}

	if settings.ProjectRoot == "" {
		settings.ProjectRoot = "."
	}

	if settings.GitDir == "" {
		settings.GitDir = settings.ProjectRoot
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if settings.ServerAddress == "" {
		settings.ServerAddress = DefaultServerAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ServerAddress); err != nil {
		return fmt.Errorf("invalid server socket: %w", err)
	}

	return nil
}

// setViperDefaults registers every key so environment overrides are picked up.
func setViperDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("mode", cfg.Mode.String())
	v.SetDefault("version_file_path", cfg.VersionFilePath)
	v.SetDefault("git_format", cfg.GitFormat.String())
	v.SetDefault("project_root", cfg.ProjectRoot)
	v.SetDefault("extensions_root", "")
	v.SetDefault("git_dir", "")
	v.SetDefault("command_timeout", cfg.CommandTimeout.String())
	v.SetDefault("disabled_functions", []string{})
	v.SetDefault("state_file", "")
	v.SetDefault("server_addr", cfg.ServerAddress)
	v.SetDefault("log_level", cfg.LogLevel)
}
