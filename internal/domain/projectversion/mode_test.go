package projectversion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseMode covers names, legacy codes and unknown values.
func TestParseMode(t *testing.T) {
	t.Parallel()

	cases := map[string]Mode{
		"":      ModeFile,
		"file":  ModeFile,
		"FILE ": ModeFile,
		"0":     ModeFile,
		"git":   ModeGit,
		"1":     ModeGit,
	}
	for input, want := range cases {
		got, err := ParseMode(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := ParseMode("svn")
	require.ErrorIs(t, err, ErrUnknownMode)
}

// TestMode_Text checks the text marshaling used by config and state files.
func TestMode_Text(t *testing.T) {
	t.Parallel()

	text, err := ModeGit.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "git", string(text))

	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("git")))
	require.Equal(t, ModeGit, m)

	require.Error(t, m.UnmarshalText([]byte("nope")))

	_, err = Mode(7).MarshalText()
	require.ErrorIs(t, err, ErrUnknownMode)
	require.False(t, Mode(7).Valid())
}

// TestParseGitFormat covers names, legacy codes and unknown values.
func TestParseGitFormat(t *testing.T) {
	t.Parallel()

	cases := map[string]GitFormat{
		"":                FormatRevision,
		"revision":        FormatRevision,
		"0":               FormatRevision,
		"revision_branch": FormatRevisionBranch,
		"revision-branch": FormatRevisionBranch,
		"1":               FormatRevisionBranch,
		"REVISION_TAG":    FormatRevisionTag,
		"2":               FormatRevisionTag,
		"branch":          FormatBranch,
		"3":               FormatBranch,
		"tag":             FormatTag,
		"4":               FormatTag,
	}
	for input, want := range cases {
		got, err := ParseGitFormat(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := ParseGitFormat("5")
	require.ErrorIs(t, err, ErrUnknownGitFormat)
}

// TestGitFormat_Text checks round trip through the text form for every format.
func TestGitFormat_Text(t *testing.T) {
	t.Parallel()

	for _, format := range GitFormats() {
		text, err := format.MarshalText()
		require.NoError(t, err)

		var parsed GitFormat
		require.NoError(t, parsed.UnmarshalText(text))
		require.Equal(t, format, parsed)
	}

	require.False(t, GitFormat(9).Valid())
	require.Equal(t, "GitFormat(9)", GitFormat(9).String())
}
