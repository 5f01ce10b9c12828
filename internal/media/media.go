// Package media attaches image files (shop logo, service reference photos)
// to an invoice after sniffing their content type.
package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/andy/boutiquebill/internal/domain"
)

var ErrUnsupportedImage = errors.New("file is not a PNG, JPEG or GIF image")

// Load inspects the file at path and returns a reference to it. The type is
// detected from the file content, not its extension.
func Load(path string) (*domain.ImageRef, error) {
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		return nil, errors.New("image path is empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect image type: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	ref := &domain.ImageRef{Path: abs, MIMEType: mtype.String()}
	if !ref.IsImage() {
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedImage, filepath.Base(path), mtype.String())
	}
	return ref, nil
}

// LoadOptional returns nil for a blank path and otherwise behaves like Load
func LoadOptional(path string) (*domain.ImageRef, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	return Load(path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
