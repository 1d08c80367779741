// Package pdfservice serves POST /extract-pdf: a multipart upload in the
// "file" field comes back as {"text": ...}.
package pdfservice

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Skufu/medassist/internal/docconv"
)

const (
	Path      = "/extract-pdf"
	FileField = "file"
)

// Extractor turns PDF bytes into text. docconv.PDFText satisfies it.
type Extractor func(data []byte) (string, error)

type Handler struct {
	extract Extractor
	logger  zerolog.Logger
}

func NewHandler(extract Extractor, logger zerolog.Logger) *Handler {
	if extract == nil {
		extract = docconv.PDFText
	}
	return &Handler{extract: extract, logger: logger}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST(Path, h.ExtractPDF)
}

func (h *Handler) ExtractPDF(c *gin.Context) {
	fh, err := c.FormFile(FileField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.fail(c, fh.Filename, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.fail(c, fh.Filename, err)
		return
	}

	text, err := h.extract(data)
	if err != nil {
		h.fail(c, fh.Filename, err)
		return
	}

	h.logger.Info().Str("file", fh.Filename).Int("bytes", len(data)).Int("chars", len(text)).Msg("pdf extracted")
	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (h *Handler) fail(c *gin.Context, name string, err error) {
	h.logger.Error().Err(err).Str("file", name).Msg("pdf extraction failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Failed to extract PDF",
		"details": err.Error(),
	})
}
