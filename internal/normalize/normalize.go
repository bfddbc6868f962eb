// Package normalize converts an uploaded artifact into the ordered content
// parts of a generation request. PDF and image files pass through as opaque
// base64 payloads; spreadsheets are flattened to CSV text; everything
// text-like is read verbatim. No network access happens here.
package normalize

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/chaiyareokput-tech/Finsi/internal/config"
	"github.com/chaiyareokput-tech/Finsi/internal/domain"
	"github.com/chaiyareokput-tech/Finsi/internal/port"
)

// TruncationMarker is appended to any text-derived part that was cut at the
// character ceiling, so dropped content is never silent.
const TruncationMarker = "\n[... truncated: content exceeded the maximum text length ...]"

// Normalizer turns one artifact into zero or more request parts.
type Normalizer struct {
	maxFileBytes int64
	maxTextChars int
}

// New creates a Normalizer bounded by the upload configuration.
func New(cfg *config.UploadConfig) *Normalizer {
	return &Normalizer{
		maxFileBytes: cfg.MaxFileBytes(),
		maxTextChars: cfg.MaxTextChars,
	}
}

// Normalize converts the artifact into an ordered list of parts: file-derived
// parts first, then the pasted text as a final annotation part. The result is
// deterministic for identical input.
func (n *Normalizer) Normalize(artifact domain.Artifact) ([]port.Part, error) {
	var parts []port.Part

	if artifact.File != nil {
		filePart, err := n.normalizeFile(artifact.File)
		if err != nil {
			return nil, err
		}
		parts = append(parts, filePart)
	}

	if artifact.Text != "" {
		text := "Additional data (user input): " + artifact.Text
		parts = append(parts, port.TextPart(n.clip(text)))
	}

	return parts, nil
}

func (n *Normalizer) normalizeFile(f *domain.FileBlob) (port.Part, error) {
	size := f.Size
	if size == 0 {
		size = int64(len(f.Bytes))
	}
	if size > n.maxFileBytes {
		return port.Part{}, fmt.Errorf("%w: file is %.2f MiB, maximum is %d MiB",
			domain.ErrFileTooLarge, float64(size)/(1024*1024), n.maxFileBytes/(1024*1024))
	}

	switch Classify(f) {
	case domain.KindPDF:
		return port.InlinePart("application/pdf", base64.StdEncoding.EncodeToString(f.Bytes)), nil

	case domain.KindImage:
		return port.InlinePart(imageMIME(f), base64.StdEncoding.EncodeToString(f.Bytes)), nil

	case domain.KindSpreadsheet:
		csvText, err := firstSheetCSV(f.Bytes)
		if err != nil {
			return port.Part{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
		}
		return port.TextPart(n.clip("Spreadsheet data (first sheet, converted to CSV):\n" + csvText)), nil

	case domain.KindText:
		return port.TextPart(n.clip("File data:\n" + string(f.Bytes))), nil

	default:
		// Last resort: a best-effort text read for unrecognized formats.
		if looksLikeText(f.Bytes) {
			return port.TextPart(n.clip("File data:\n" + string(f.Bytes))), nil
		}
		return port.Part{}, fmt.Errorf("%w: %q could not be read; accepted formats are PDF, Excel, CSV, plain text and images",
			domain.ErrUnsupportedFormat, f.Name)
	}
}

// Classify determines the artifact kind with a dual check: the declared MIME
// type first, then the file name extension, then content sniffing. Browsers
// and OSes report empty or generic MIME types for common formats, so no
// single signal is trusted on its own.
func Classify(f *domain.FileBlob) domain.ArtifactKind {
	if kind, ok := kindFromMIME(f.ContentType); ok {
		return kind
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Name), "."))
	if kind, ok := domain.KindByExtension[ext]; ok {
		return kind
	}
	if kind, ok := kindFromMIME(mimetype.Detect(f.Bytes).String()); ok {
		return kind
	}
	return domain.KindUnknown
}

func kindFromMIME(contentType string) (domain.ArtifactKind, bool) {
	mt := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch {
	case mt == "" || mt == "application/octet-stream":
		return domain.KindUnknown, false
	case mt == "application/pdf":
		return domain.KindPDF, true
	case strings.HasPrefix(mt, "image/"):
		return domain.KindImage, true
	case strings.Contains(mt, "spreadsheet") || strings.Contains(mt, "excel") || strings.Contains(mt, "ms-excel"):
		return domain.KindSpreadsheet, true
	case strings.Contains(mt, "csv") || strings.HasPrefix(mt, "text/"):
		return domain.KindText, true
	}
	return domain.KindUnknown, false
}

// imageMIME resolves the MIME type attached to an inline image part,
// preferring the declared type over the extension over sniffed content.
func imageMIME(f *domain.FileBlob) string {
	declared := strings.ToLower(strings.TrimSpace(f.ContentType))
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Name), "."))
	if mt, ok := domain.ImageExtensions[ext]; ok {
		return mt
	}
	return mimetype.Detect(f.Bytes).String()
}

// clip bounds a text payload to the configured character ceiling, appending
// the truncation marker when content was dropped.
func (n *Normalizer) clip(text string) string {
	if utf8.RuneCountInString(text) <= n.maxTextChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:n.maxTextChars]) + TruncationMarker
}

// looksLikeText reports whether the bytes are plausibly a text document:
// valid UTF-8 with no NUL bytes.
func looksLikeText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return false
	}
	for _, b := range data {
		if b == 0 {
			return false
		}
	}
	return true
}
