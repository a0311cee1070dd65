// Package filex reads the media files a user attaches to assistant requests
// and prepares directories for on-disk databases.
package filex

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxAttachmentSize caps an attachment read by ReadAttachment.
const MaxAttachmentSize = 20 << 20

var (
	ErrTooLarge = errors.New("file is too large")
	ErrEmpty    = errors.New("file is empty")
)

// ReadAttachment loads path and reports its MIME type. The type comes from
// the extension when known, otherwise from the content.
func ReadAttachment(path string) ([]byte, string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, "", fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > MaxAttachmentSize {
		return nil, "", fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return data, DetectMIME(path, data), nil
}

// DetectMIME guesses the media type of data named path, without parameters.
func DetectMIME(path string, data []byte) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if t == "" {
		t = http.DetectContentType(data)
	}
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		return mt
	}
	return t
}

// EnsureParentDir creates the directory that will hold the file at path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
