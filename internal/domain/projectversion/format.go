package projectversion

import (
	"errors"
	"fmt"
	"strings"
)

// GitFormat selects which git-derived fields compose the version string.
// The numeric values match the legacy configuration codes.
type GitFormat int

const (
	// FormatRevision renders the abbreviated commit hash only.
	FormatRevision GitFormat = iota
	// FormatRevisionBranch renders "hash (branch)".
	FormatRevisionBranch
	// FormatRevisionTag renders "hash (tag)".
	FormatRevisionTag
	// FormatBranch renders the branch name only.
	FormatBranch
	// FormatTag renders the nearest tag description only.
	FormatTag
)

// ErrUnknownGitFormat is returned when a format string cannot be parsed.
var ErrUnknownGitFormat = errors.New("unknown git format")

//nolint:gochecknoglobals // Lookup table for textual format names.
var gitFormatNames = map[GitFormat]string{
	FormatRevision:       "revision",
	FormatRevisionBranch: "revision_branch",
	FormatRevisionTag:    "revision_tag",
	FormatBranch:         "branch",
	FormatTag:            "tag",
}

// GitFormats returns every known format in code order.
func GitFormats() []GitFormat {
	return []GitFormat{
		FormatRevision,
		FormatRevisionBranch,
		FormatRevisionTag,
		FormatBranch,
		FormatTag,
	}
}

// ParseGitFormat converts a format name or legacy code ("0".."4") into GitFormat.
// An empty string means FormatRevision.
func ParseGitFormat(s string) (GitFormat, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")

	if normalized == "" {
		return FormatRevision, nil
	}

	for _, format := range GitFormats() {
		if normalized == gitFormatNames[format] || normalized == fmt.Sprint(int(format)) {
			return format, nil
		}
	}

	return FormatRevision, fmt.Errorf("%w: %q", ErrUnknownGitFormat, s)
}

// Valid reports whether f is one of the known formats.
func (f GitFormat) Valid() bool {
	_, ok := gitFormatNames[f]

	return ok
}

// String returns the textual form of the format.
func (f GitFormat) String() string {
	if name, ok := gitFormatNames[f]; ok {
		return name
	}

	return fmt.Sprintf("GitFormat(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f GitFormat) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGitFormat, int(f))
	}

	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *GitFormat) UnmarshalText(text []byte) error {
	parsed, err := ParseGitFormat(string(text))
	if err != nil {
		return err
	}

	*f = parsed

	return nil
}
