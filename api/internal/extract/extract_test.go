package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVision struct {
	text string
	err  error

	calls int
	mime  string
}

func (f *fakeVision) Transcribe(_ context.Context, _ []byte, mime string) (string, error) {
	f.calls++
	f.mime = mime
	return f.text, f.err
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestFromImage(t *testing.T) {
	vision := &fakeVision{text: "2x + 5 = 13"}
	svc := New(vision, vision)

	path := writeTemp(t, "homework.png", []byte("not-a-real-png"))
	text, conf := svc.FromImage(context.Background(), path)

	assert.Equal(t, "2x + 5 = 13", text)
	assert.Equal(t, 95.0, conf)
	assert.Equal(t, "image/png", vision.mime)
}

func TestFromImageUnknownExtensionDefaultsToJPEG(t *testing.T) {
	vision := &fakeVision{text: "something"}
	svc := New(vision, vision)

	path := writeTemp(t, "scan.bmp", []byte("x"))
	svc.FromImage(context.Background(), path)

	assert.Equal(t, "image/jpeg", vision.mime)
}

func TestFromImageVisionErrorAbsorbed(t *testing.T) {
	vision := &fakeVision{err: errors.New("rate limited")}
	svc := New(vision, vision)

	path := writeTemp(t, "homework.jpg", []byte("x"))
	text, conf := svc.FromImage(context.Background(), path)

	assert.Empty(t, text)
	assert.Equal(t, 0.0, conf)
}

func TestFromImageMissingFile(t *testing.T) {
	vision := &fakeVision{text: "never used"}
	svc := New(vision, vision)

	text, conf := svc.FromImage(context.Background(), "/nonexistent/file.png")

	assert.Empty(t, text)
	assert.Equal(t, 0.0, conf)
	assert.Zero(t, vision.calls)
}

func TestFromImageEmptyTranscription(t *testing.T) {
	vision := &fakeVision{text: "   "}
	svc := New(vision, vision)

	path := writeTemp(t, "blank.jpeg", []byte("x"))
	text, conf := svc.FromImage(context.Background(), path)

	assert.Empty(t, text)
	assert.Equal(t, 0.0, conf)
}

func TestFromPDFUnreadableFile(t *testing.T) {
	vision := &fakeVision{text: "never used"}
	svc := New(vision, vision)

	// Not a PDF at all: pdfcpu refuses it, the whole call degrades.
	path := writeTemp(t, "bogus.pdf", []byte("plain text, no pdf header"))
	text, conf := svc.FromPDF(context.Background(), path)

	assert.Empty(t, text)
	assert.Equal(t, 0.0, conf)
	assert.Zero(t, vision.calls)
}
