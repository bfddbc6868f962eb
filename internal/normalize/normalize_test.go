package normalize_test

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaiyareokput-tech/Finsi/internal/config"
	"github.com/chaiyareokput-tech/Finsi/internal/domain"
	"github.com/chaiyareokput-tech/Finsi/internal/normalize"
)

func testNormalizer() *normalize.Normalizer {
	return normalize.New(&config.UploadConfig{
		MaxFileSizeMB: 10,
		MaxTextChars:  50000,
	})
}

func TestNormalize_PDF_Base64RoundTrip(t *testing.T) {
	n := testNormalizer()
	original := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj")

	parts, err := n.Normalize(domain.Artifact{
		File: &domain.FileBlob{
			Name:        "statement.pdf",
			ContentType: "application/pdf",
			Size:        int64(len(original)),
			Bytes:       original,
		},
	})

	require.NoError(t, err)
	require.Len(t, parts, 1)
	require.NotNil(t, parts[0].Inline)
	assert.Equal(t, "application/pdf", parts[0].Inline.MIMEType)

	decoded, err := base64.StdEncoding.DecodeString(parts[0].Inline.Data)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(original, decoded), "base64 round trip must reproduce the original bytes")
}

func TestNormalize_OversizedFile_RejectedBeforeParsing(t *testing.T) {
	n := testNormalizer()

	_, err := n.Normalize(domain.Artifact{
		File: &domain.FileBlob{
			Name:        "big.pdf",
			ContentType: "application/pdf",
			Size:        12 * 1024 * 1024,
			Bytes:       []byte("%PDF-1.4"),
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	assert.Contains(t, err.Error(), "12.00 MiB")
	assert.Contains(t, err.Error(), "10 MiB")
}

func TestNormalize_ExtensionFallback_GenericMIME(t *testing.T) {
	n := testNormalizer()

	parts, err := n.Normalize(domain.Artifact{
		File: &domain.FileBlob{
			Name:        "report.pdf",
			ContentType: "application/octet-stream",
			Bytes:       []byte("%PDF-1.4 minimal"),
		},
	})

	require.NoError(t, err)
	require.Len(t, parts, 1)
	require.NotNil(t, parts[0].Inline)
	assert.Equal(t, "application/pdf", parts[0].Inline.MIMEType)
}

func TestNormalize_ImageMIMEFromExtension(t *testing.T) {
	n := testNormalizer()

	parts, err := n.Normalize(domain.Artifact{
		File: &domain.FileBlob{
			Name:  "scan.webp",
			Bytes: []byte{0x52, 0x49, 0x46, 0x46, 0x01, 0x02, 0x03, 0x04, 0x57, 0x45, 0x42, 0x50},
		},
	})

	require.NoError(t, err)
	require.Len(t, parts, 1)
	require.NotNil(t, parts[0].Inline)
	assert.Equal(t, "image/webp", parts[0].Inline.MIMEType)
}

func TestNormalize_TextFileVerbatim(t *testing.T) {
	n := testNormalizer()
	content := "Revenue,100\nExpense,40"

	parts, err := n.Normalize(domain.Artifact{
		File: &domain.FileBlob{
			Name:        "data.csv",
			ContentType: "text/csv",
			Bytes:       []byte(content),
		},
	})

	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Nil(t, parts[0].Inline)
	assert.Contains(t, parts[0].Text, content)
}

func TestNormalize_PastedTextOnly(t *testing.T) {
	n := testNormalizer()

	parts, err := n.Normalize(domain.Artifact{Text: "Revenue,100\nExpense,40"})

	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Nil(t, parts[0].Inline)
	assert.Contains(t, parts[0].Text, "Revenue,100")
}

func TestNormalize_TruncationExactBound(t *testing.T) {
	n := testNormalizer()
	long := strings.Repeat("a", 60000)

	parts, err := n.Normalize(domain.Artifact{Text: long})

	require.NoError(t, err)
	require.Len(t, parts, 1)
	text := parts[0].Text
	assert.True(t, strings.HasSuffix(text, normalize.TruncationMarker))

	markerRunes := utf8.RuneCountInString(normalize.TruncationMarker)
	assert.Equal(t, 50000+markerRunes, utf8.RuneCountInString(text),
		"truncated part must be exactly the ceiling plus the marker")

	// Everything before the marker is the untouched head of the input.
	head := strings.TrimSuffix(text, normalize.TruncationMarker)
	assert.True(t, strings.HasSuffix(head, "aaaa"))
}

func TestNormalize_ShortTextNotTruncated(t *testing.T) {
	n := testNormalizer()

	parts, err := n.Normalize(domain.Artifact{Text: "short"})

	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.NotContains(t, parts[0].Text, normalize.TruncationMarker)
}

func TestNormalize_Idempotent(t *testing.T) {
	n := testNormalizer()
	artifact := domain.Artifact{
		File: &domain.FileBlob{
			Name:        "statement.pdf",
			ContentType: "application/pdf",
			Bytes:       []byte("%PDF-1.4 fixture"),
		},
		Text: "extra notes",
	}

	first, err := n.Normalize(artifact)
	require.NoError(t, err)
	second, err := n.Normalize(artifact)
	require.NoError(t, err)

	assert.Equal(t, first, second, "normalizing the same artifact twice must yield identical parts")
}

func TestNormalize_UnknownBinary_Unsupported(t *testing.T) {
	n := testNormalizer()

	_, err := n.Normalize(domain.Artifact{
		File: &domain.FileBlob{
			Name:  "blob.bin",
			Bytes: []byte{0x00, 0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "accepted formats")
}

func TestNormalize_UnknownExtension_TextFallback(t *testing.T) {
	n := testNormalizer()

	parts, err := n.Normalize(domain.Artifact{
		File: &domain.FileBlob{
			Name:  "notes.dat",
			Bytes: []byte("plain readable content"),
		},
	})

	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Contains(t, parts[0].Text, "plain readable content")
}

func TestNormalize_NoInput_NoParts(t *testing.T) {
	n := testNormalizer()

	parts, err := n.Normalize(domain.Artifact{})

	require.NoError(t, err)
	assert.Empty(t, parts)
}

func TestClassify_DualCheck(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		contentType string
		bytes       []byte
		want        domain.ArtifactKind
	}{
		{"declared pdf", "x", "application/pdf", nil, domain.KindPDF},
		{"declared image", "x", "image/png", nil, domain.KindImage},
		{"declared xlsx", "x", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil, domain.KindSpreadsheet},
		{"declared legacy excel", "x", "application/vnd.ms-excel", nil, domain.KindSpreadsheet},
		{"declared csv", "x", "text/csv", nil, domain.KindText},
		{"extension jpg, empty mime", "photo.JPG", "", []byte{0x01}, domain.KindImage},
		{"extension xlsx, generic mime", "book.xlsx", "application/octet-stream", []byte{0x01}, domain.KindSpreadsheet},
		{"extension txt", "notes.txt", "", []byte("hi"), domain.KindText},
		{"sniffed pdf", "mystery", "", []byte("%PDF-1.7 content here"), domain.KindPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.Classify(&domain.FileBlob{
				Name:        tt.fileName,
				ContentType: tt.contentType,
				Bytes:       tt.bytes,
			})
			assert.Equal(t, tt.want, got)
		})
	}
}
