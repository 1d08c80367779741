// Package extractclient talks to a remote PDF extraction service.
package extractclient

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/Skufu/medassist/internal/pdfservice"
)

type extractResponse struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type Client struct {
	httpClient *resty.Client
	logger     zerolog.Logger
}

func New(baseURL string, logger zerolog.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{httpClient: client, logger: logger}
}

// ExtractPDF uploads r as the pdfservice.FileField field of POST pdfservice.Path.
func (c *Client) ExtractPDF(ctx context.Context, name string, r io.Reader) (string, error) {
	var (
		out    extractResponse
		errOut errorResponse
	)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFileReader(pdfservice.FileField, name, r).
		SetResult(&out).
		SetError(&errOut).
		Post(pdfservice.Path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", name, err)
	}

	if resp.IsError() {
		c.logger.Warn().
			Str("file", name).
			Int("status", resp.StatusCode()).
			Str("error", errOut.Error).
			Str("details", errOut.Details).
			Msg("remote pdf extraction failed")
		if errOut.Details != "" {
			return "", fmt.Errorf("extract %s: %s (status %d): %s", name, errOut.Error, resp.StatusCode(), errOut.Details)
		}
		return "", fmt.Errorf("extract %s: %s (status %d)", name, errOut.Error, resp.StatusCode())
	}

	return out.Text, nil
}
