package domain

import "path/filepath"

// ImageRef points at an image file on disk (shop logo or a service reference photo)
type ImageRef struct {
	Path     string
	MIMEType string // e.g. "image/png"
}

// Name returns the file name without its directory
func (r *ImageRef) Name() string {
	return filepath.Base(r.Path)
}

// IsImage reports whether the detected MIME type is one the PDF export can embed
func (r *ImageRef) IsImage() bool {
	switch r.MIMEType {
	case "image/png", "image/jpeg", "image/gif":
		return true
	}
	return false
}
