package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	imageText string
	imageConf float64
	pdfText   string
	pdfConf   float64

	imageCalls, pdfCalls int
}

func (f *fakeBackend) FromImage(context.Context, string) (string, float64) {
	f.imageCalls++
	return f.imageText, f.imageConf
}

func (f *fakeBackend) FromPDF(context.Context, string) (string, float64) {
	f.pdfCalls++
	return f.pdfText, f.pdfConf
}

func TestParseSubmissionDirectText(t *testing.T) {
	backend := &fakeBackend{}
	o := NewOrchestrator(backend)

	got, err := o.ParseSubmission(context.Background(), "", "What is 7*8?", "text")
	require.NoError(t, err)

	assert.Equal(t, "What is 7*8?", got.RawText)
	assert.Equal(t, 100.0, got.ConfidenceScore)
	assert.Equal(t, "text", got.Format)
	require.Len(t, got.DetectedProblems, 1)
	assert.Equal(t, "What is 7*8?", got.DetectedProblems[0].Text)
	assert.Zero(t, backend.imageCalls)
	assert.Zero(t, backend.pdfCalls)
}

func TestParseSubmissionTextWinsOverDeclaredType(t *testing.T) {
	backend := &fakeBackend{imageText: "from image", imageConf: 95}
	o := NewOrchestrator(backend)

	got, err := o.ParseSubmission(context.Background(), "/tmp/f.png", "typed text", "image")
	require.NoError(t, err)

	assert.Equal(t, "typed text", got.RawText)
	assert.Equal(t, 100.0, got.ConfidenceScore)
	assert.Zero(t, backend.imageCalls)
}

func TestParseSubmissionWhitespaceTextIsStillText(t *testing.T) {
	backend := &fakeBackend{imageText: "from image", imageConf: 95}
	o := NewOrchestrator(backend)

	got, err := o.ParseSubmission(context.Background(), "/tmp/f.png", "   ", "image")
	require.NoError(t, err)

	assert.Equal(t, "   ", got.RawText)
	assert.Equal(t, 100.0, got.ConfidenceScore)
	assert.Zero(t, backend.imageCalls)
}

func TestParseSubmissionImage(t *testing.T) {
	backend := &fakeBackend{imageText: "1. What is 2+2?\n2. What is 3+3?", imageConf: 95}
	o := NewOrchestrator(backend)

	got, err := o.ParseSubmission(context.Background(), "/tmp/f.png", "", "image")
	require.NoError(t, err)

	assert.Equal(t, 95.0, got.ConfidenceScore)
	assert.Equal(t, 1, backend.imageCalls)
	require.Len(t, got.DetectedProblems, 2)
	assert.Equal(t, "What is 2+2?", got.DetectedProblems[0].Text)
	assert.Equal(t, "What is 3+3?", got.DetectedProblems[1].Text)
}

func TestParseSubmissionPDF(t *testing.T) {
	backend := &fakeBackend{pdfText: "some worksheet text", pdfConf: 90}
	o := NewOrchestrator(backend)

	got, err := o.ParseSubmission(context.Background(), "/tmp/f.pdf", "", "pdf")
	require.NoError(t, err)

	assert.Equal(t, 90.0, got.ConfidenceScore)
	assert.Equal(t, 1, backend.pdfCalls)
	assert.Equal(t, "pdf", got.Format)
}

func TestParseSubmissionExtractionFailureIsNotAnError(t *testing.T) {
	backend := &fakeBackend{imageText: "", imageConf: 0}
	o := NewOrchestrator(backend)

	got, err := o.ParseSubmission(context.Background(), "/tmp/f.png", "", "image")
	require.NoError(t, err)

	assert.Empty(t, got.RawText)
	assert.Equal(t, 0.0, got.ConfidenceScore)
}

func TestParseSubmissionInvalidInput(t *testing.T) {
	o := NewOrchestrator(&fakeBackend{})

	_, err := o.ParseSubmission(context.Background(), "", "", "image")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = o.ParseSubmission(context.Background(), "", "", "text")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
