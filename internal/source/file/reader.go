package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/project-version/internal/logger"
)

const (
	// DefaultFilename is appended when the configured path is a directory.
	DefaultFilename = "VERSION"

	// ExtensionPrefix marks a path relative to the extensions root.
	ExtensionPrefix = "EXT:"
)

var (
	// ErrEmptyPath is returned when no path is configured.
	ErrEmptyPath = errors.New("version file path is empty")
	// ErrExtensionsRootNotSet is returned for EXT: paths without a configured root.
	ErrExtensionsRootNotSet = errors.New("extensions root is not configured")
	// ErrOutsideRoot is returned when an EXT: path escapes the extensions root.
	ErrOutsideRoot = errors.New("path escapes extensions root")
)

// Reader resolves configured paths and reads version files.
type Reader struct {
	// projectRoot anchors plain relative paths.
	projectRoot string
	// extensionsRoot anchors EXT: paths.
	extensionsRoot string
}

// NewReader creates a Reader. An empty projectRoot means the working directory.
func NewReader(projectRoot, extensionsRoot string) *Reader {
	if projectRoot == "" {
		projectRoot = "."
	}

	return &Reader{
		projectRoot:    projectRoot,
		extensionsRoot: extensionsRoot,
	}
}

// Resolve returns the trimmed contents of the version file behind path.
// It returns false when the path is empty, cannot be expanded, does not
// exist, is unreadable, or holds only whitespace.
func (r *Reader) Resolve(ctx context.Context, path string) (string, bool) {
	ctx = logger.WithKV(ctx, "version_file_path", path)

	filename, err := r.Locate(path)
	if err != nil {
		logger.DebugKV(ctx, "Version file path unusable", "error", err)
		return "", false
	}

	contents, err := os.ReadFile(filename)
	if err != nil {
		logger.DebugKV(ctx, "Version file unavailable", "file", filename, "error", err)
		return "", false
	}

	value := strings.TrimSpace(string(contents))
	if value == "" {
		logger.DebugKV(ctx, "Version file is empty", "file", filename)
		return "", false
	}

	return value, true
}

// Locate expands path into the absolute name of the version file.
// Directories, and paths ending with a separator, get DefaultFilename appended.
// The returned file is not guaranteed to exist.
func (r *Reader) Locate(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrEmptyPath
	}

	isDir := strings.HasSuffix(path, "/") || os.IsPathSeparator(path[len(path)-1])

	absolute, err := r.expand(path)
	if err != nil {
		return "", err
	}

	if !isDir {
		if info, statErr := os.Stat(absolute); statErr == nil && info.IsDir() {
			isDir = true
		}
	}

	if isDir {
		absolute = filepath.Join(absolute, DefaultFilename)
	}

	return absolute, nil
}

// expand turns an EXT: or relative path into an absolute, cleaned path.
func (r *Reader) expand(path string) (string, error) {
	if rest, ok := strings.CutPrefix(path, ExtensionPrefix); ok {
		return r.expandExtension(rest)
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(r.projectRoot, path)
	}

	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}

	return absolute, nil
}

// expandExtension resolves "key/rest" below the extensions root.
func (r *Reader) expandExtension(rest string) (string, error) {
	if r.extensionsRoot == "" {
		return "", ErrExtensionsRootNotSet
	}

	root, err := filepath.Abs(r.extensionsRoot)
	if err != nil {
		return "", fmt.Errorf("absolute extensions root: %w", err)
	}

	absolute := filepath.Join(root, filepath.FromSlash(rest))

	relative, err := filepath.Rel(root, absolute)
	if err != nil || relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rest)
	}

	return absolute, nil
}
