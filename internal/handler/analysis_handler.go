package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chaiyareokput-tech/Finsi/internal/domain"
	"github.com/chaiyareokput-tech/Finsi/internal/session"
)

// AnalysisService is the slice of the analyzer the upload surface needs.
type AnalysisService interface {
	Analyze(ctx context.Context, artifact domain.Artifact) (*domain.AnalysisResult, error)
}

// AnalysisHandler exposes the upload surface: one multipart endpoint that
// accepts a file and/or pasted text and returns the structured analysis.
type AnalysisHandler struct {
	analyzer AnalysisService
	tracker  *session.Tracker
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analyzer AnalysisService, tracker *session.Tracker) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, tracker: tracker}
}

// Analyze handles POST /api/v1/analyze. Form fields: "file" (optional
// upload), "text" (optional pasted data). Only one attempt may be in flight
// at a time; a concurrent attempt gets 409.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	if _, err := h.tracker.Begin(); err != nil {
		HandleError(c, err)
		return
	}
	// A panic past this point must not leave the attempt marked in-flight,
	// or every later request gets 409 until restart. Resolve the attempt,
	// then let the recovery middleware produce the 500.
	defer func() {
		if r := recover(); r != nil {
			h.tracker.Fail("internal error")
			panic(r)
		}
	}()

	artifact, err := readArtifact(c)
	if err != nil {
		h.tracker.Fail(err.Error())
		HandleError(c, err)
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), artifact)
	if err != nil {
		_, _, msg := MapDomainError(err)
		h.tracker.Fail(msg)
		HandleError(c, err)
		return
	}

	h.tracker.Succeed(result)
	RespondOK(c, result)
}

// Session handles GET /api/v1/session.
func (h *AnalysisHandler) Session(c *gin.Context) {
	RespondOK(c, h.tracker.Snapshot())
}

// ResetSession handles POST /api/v1/session/reset. The last result is
// discarded entirely; nothing is kept across sessions.
func (h *AnalysisHandler) ResetSession(c *gin.Context) {
	if err := h.tracker.Reset(); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, h.tracker.Snapshot())
}

func readArtifact(c *gin.Context) (domain.Artifact, error) {
	artifact := domain.Artifact{Text: c.PostForm("text")}

	header, err := c.FormFile("file")
	if err != nil && err != http.ErrMissingFile {
		return domain.Artifact{}, fmt.Errorf("reading upload: %w", err)
	}
	if header != nil {
		f, err := header.Open()
		if err != nil {
			return domain.Artifact{}, fmt.Errorf("opening upload: %w", err)
		}
		defer func() { _ = f.Close() }()
		data, err := io.ReadAll(f)
		if err != nil {
			return domain.Artifact{}, fmt.Errorf("reading upload: %w", err)
		}
		artifact.File = &domain.FileBlob{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Bytes:       data,
		}
	}

	return artifact, nil
}
