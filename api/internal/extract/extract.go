// Package extract turns uploaded artifacts (images, PDFs) into raw text
// with a coarse confidence score, and orchestrates the parsing pipeline.
//
// Confidence values are fixed constants, not measured certainty: the
// vision models do not expose a usable signal, so presence of text is the
// only thing the score reflects.
package extract

import (
	"context"
	"log"
	"os"
	"strings"

	"homework-tools/api/internal/util"
)

const (
	imageConfidence      = 95.0
	nativePDFConfidence  = 95.0
	scannedPDFConfidence = 90.0
	directTextConfidence = 100.0

	// Native PDF text shorter than this is treated as a scanned document.
	nativeTextThreshold = 50
	// Scanned PDFs send at most this many pages to the vision model.
	maxVisionPages = 5
)

// Vision is the single multimodal call the backend needs from an engine.
type Vision interface {
	Transcribe(ctx context.Context, data []byte, mime string) (string, error)
}

// Service holds two vision seams: images go to the image engine, carved
// PDF pages to the document engine. OpenAI rejects non-image data URLs,
// so the document engine must accept application/pdf blobs (Gemini does).
type Service struct {
	images    Vision
	documents Vision
}

func New(images, documents Vision) *Service {
	return &Service{images: images, documents: documents}
}

// FromImage extracts text from an image file. Failures are absorbed: the
// caller always gets a (text, confidence) pair, never an error.
func (s *Service) FromImage(ctx context.Context, path string) (string, float64) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("extract: read image: %v", err)
		return "", 0.0
	}
	return s.transcribe(ctx, s.images, data, util.ImageMIMEForPath(path))
}

func (s *Service) transcribe(ctx context.Context, v Vision, data []byte, mime string) (string, float64) {
	text, err := v.Transcribe(ctx, data, mime)
	if err != nil {
		log.Printf("extract: vision: %v", err)
		return "", 0.0
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", 0.0
	}
	return text, imageConfidence
}
