package util

import (
	"path/filepath"
	"strings"
)

var imageMIMEByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageMIMEForPath maps a file extension to an image MIME type,
// defaulting to image/jpeg for anything unrecognized.
func ImageMIMEForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if m, ok := imageMIMEByExt[ext]; ok {
		return m
	}
	return "image/jpeg"
}

func MakeDataURL(mime, b64 string) string {
	return "data:" + mime + ";base64," + b64
}

// SniffMime detects JPEG/PNG/PDF by magic bytes.
func SniffMime(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8 {
		return "image/jpeg"
	}
	if len(b) >= 8 &&
		b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47 &&
		b[4] == 0x0D && b[5] == 0x0A && b[6] == 0x1A && b[7] == 0x0A {
		return "image/png"
	}
	if len(b) >= 5 && b[0] == '%' && b[1] == 'P' && b[2] == 'D' && b[3] == 'F' && b[4] == '-' {
		return "application/pdf"
	}
	return "application/octet-stream"
}
