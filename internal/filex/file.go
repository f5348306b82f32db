// Package filex holds the small file-system helpers the vault needs for
// attachments, exports and the database location.
package filex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxAttachment caps attachment files read from disk.
const DefaultMaxAttachment = 10 << 20

var (
	ErrTooLarge = errors.New("file too large")
	ErrNotImage = errors.New("file is not an image")
)

// EnsureParentDir creates the directory that will hold path. Paths without
// a directory component are left alone.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// ReadAttachment reads an image file of at most maxSize bytes and returns
// its base name and content. maxSize <= 0 means DefaultMaxAttachment.
func ReadAttachment(path string, maxSize int64) (string, []byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxAttachment
	}

	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > maxSize {
		return "", nil, fmt.Errorf("%s: %w (limit %d bytes)", path, ErrTooLarge, maxSize)
	}

	if kind := http.DetectContentType(data); !strings.HasPrefix(kind, "image/") {
		return "", nil, fmt.Errorf("%s: %w (%s)", path, ErrNotImage, kind)
	}

	return filepath.Base(path), data, nil
}
