package extract

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// FromPDF extracts text from a PDF. The native text layer wins when it
// holds more than nativeTextThreshold characters; otherwise the document
// is treated as scanned and up to maxVisionPages single-page slices go
// through the vision model. Any document-level failure yields ("", 0).
func (s *Service) FromPDF(ctx context.Context, path string) (string, float64) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("extract: open pdf: %v", err)
		return "", 0.0
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		log.Printf("extract: pdfcpu read: %v", err)
		return "", 0.0
	}

	parts := make([]string, 0, pctx.PageCount)
	for page := 1; page <= pctx.PageCount; page++ {
		parts = append(parts, pageText(pctx, page))
	}
	full := strings.TrimSpace(strings.Join(parts, "\n"))
	if len(full) > nativeTextThreshold {
		return full, nativePDFConfidence
	}

	// Scanned document: carve single-page PDFs and transcribe each.
	log.Print("extract: pdf appears to be scanned, using vision fallback")
	pages := pctx.PageCount
	if pages > maxVisionPages {
		pages = maxVisionPages
	}
	texts := make([]string, 0, pages)
	for page := 1; page <= pages; page++ {
		slice, err := pageSlice(f, conf, page)
		if err != nil {
			log.Printf("extract: pdf page %d: %v", page, err)
			return "", 0.0
		}
		text, _ := s.transcribe(ctx, s.documents, slice, "application/pdf")
		texts = append(texts, text)
	}
	full = strings.TrimSpace(strings.Join(texts, "\n\n"))
	if full == "" {
		return "", 0.0
	}
	return full, scannedPDFConfidence
}

// pageSlice writes the selected page as a standalone one-page PDF.
func pageSlice(rs io.ReadSeeker, conf *model.Configuration, page int) ([]byte, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := api.Trim(rs, &buf, []string{strconv.Itoa(page)}, conf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pageText(pctx *model.Context, page int) string {
	r, err := pdfcpu.ExtractPageContent(pctx, page)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return contentStreamText(data)
}

// pdfStringRe matches one PDF string literal, escapes included.
var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)

// contentOpRe matches the show-text operators (Tj, ', TJ) and the
// cursor-move operators (Td, TD, T*) anywhere in a content stream.
// Producers are free to pack a whole text object onto one line, so
// matching cannot assume operators terminate lines.
var contentOpRe = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)\s*(?:Tj|')|\[((?:\\.|[^\\\]])*)\]\s*TJ|T(?:d|D|\*)`)

// contentStreamText pulls the shown text out of a page content stream.
// Cursor moves become newlines so words from separate runs do not glue
// together.
func contentStreamText(data []byte) string {
	var sb strings.Builder
	for _, m := range contentOpRe.FindAllSubmatch(data, -1) {
		switch {
		case m[1] != nil: // (string) Tj  or  (string) '
			sb.WriteString(decodePDFString(m[1]))
		case m[2] != nil: // [(str) kern (str)] TJ
			for _, s := range pdfStringRe.FindAllSubmatch(m[2], -1) {
				sb.WriteString(decodePDFString(s[1]))
			}
		default: // Td / TD / T*
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

// decodePDFString handles the basic PDF literal escapes, including octal.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}
