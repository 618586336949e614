package projectversion

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the configured source of version data.
type Mode int

const (
	// ModeFile reads the version from a static file.
	ModeFile Mode = iota
	// ModeGit derives the version from local git metadata.
	ModeGit
)

// ErrUnknownMode is returned when a mode string cannot be parsed.
var ErrUnknownMode = errors.New("unknown mode")

// ParseMode converts a textual mode into Mode.
// Legacy numeric codes ("0", "1") are accepted; an empty string means ModeFile.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "file", "0":
		return ModeFile, nil
	case "git", "1":
		return ModeGit, nil
	default:
		return ModeFile, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeFile || m == ModeGit
}

// String returns the textual form of the mode.
func (m Mode) String() string {
	switch m {
	case ModeFile:
		return "file"
	case ModeGit:
		return "git"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}
