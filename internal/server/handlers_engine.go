package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/medassist/internal/docconv"
	"github.com/Skufu/medassist/internal/interactions"
	"github.com/Skufu/medassist/internal/labs"
	"github.com/Skufu/medassist/internal/risk"
)

const uploadField = "files"

type labsRequest struct {
	Text string `json:"text"`
}

type labsResponse struct {
	Measurements []labs.Measurement `json:"measurements"`
	Abnormal     []labs.Measurement `json:"abnormal"`
	Sections     []string           `json:"sections"`
}

type documentResult struct {
	Name string `json:"name"`
	labsResponse
}

type riskRequest struct {
	Symptoms   []string    `json:"symptoms"`
	Vitals     risk.Vitals `json:"vitals"`
	Conditions []string    `json:"conditions"`
}

type interactionsRequest struct {
	Medications []string `json:"medications"`
	Text        string   `json:"text"`
}

type respondRequest struct {
	Query           string   `json:"query"`
	TrackedSymptoms []string `json:"trackedSymptoms"`
}

func (a *App) knowledgeIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"analytes":    a.kb.Ranges(),
		"symptoms":    a.kb.Symptoms(),
		"conditions":  a.kb.Conditions(),
		"medications": a.kb.Drugs(),
	})
}

func (a *App) analyze(text string) labsResponse {
	ms := a.labs.ExtractAndClassify(text)
	return labsResponse{
		Measurements: ms,
		Abnormal:     labs.Abnormal(ms),
		Sections:     labs.DetectSections(text),
	}
}

func (a *App) extractLabs(c *gin.Context) {
	var req labsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	c.JSON(http.StatusOK, a.analyze(req.Text))
}

// uploadDocuments converts each uploaded file to text and extracts labs.
// Files that fail to convert are logged and left out of the results.
func (a *App) uploadDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	files := form.File[uploadField]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	results := []documentResult{}
	skipped := []string{}
	for _, fh := range files {
		text, err := a.documentText(c.Request.Context(), fh)
		if err != nil {
			a.logger.Warn().Err(err).Str("file", fh.Filename).Msg("document conversion failed")
			skipped = append(skipped, fh.Filename)
			continue
		}
		results = append(results, documentResult{Name: fh.Filename, labsResponse: a.analyze(text)})
	}

	c.JSON(http.StatusOK, gin.H{"documents": results, "skipped": skipped})
}

func (a *App) documentText(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	name := fh.Filename
	if docconv.KindOf(name) == docconv.KindPDF && a.remotePDF != nil {
		return a.remotePDF.ExtractPDF(ctx, name, bytes.NewReader(data))
	}
	return docconv.Convert(name, data)
}

func (a *App) assessRisk(c *gin.Context) {
	var req riskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if problems := req.Vitals.Validate(); len(problems) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation_failed", "details": problems})
		return
	}
	c.JSON(http.StatusOK, risk.Score(req.Symptoms, req.Vitals, req.Conditions))
}

func (a *App) checkInteractions(c *gin.Context) {
	var req interactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	meds := []string{}
	for _, m := range req.Medications {
		if trimmed := strings.TrimSpace(m); trimmed != "" {
			meds = append(meds, trimmed)
		}
	}
	if len(meds) == 0 {
		meds = interactions.ParseList(req.Text)
	}

	c.JSON(http.StatusOK, gin.H{
		"medications":  meds,
		"interactions": a.checker.Check(meds),
		"empty":        len(meds) == 0,
	})
}

func (a *App) respond(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	reply, rule := a.chat.Route(req.Query, req.TrackedSymptoms)
	c.JSON(http.StatusOK, gin.H{"response": reply, "rule": rule})
}
