package pdfservice

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(extract Extractor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(extract, zerolog.Nop()).Register(r)
	return r
}

func multipartBody(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file"))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestExtractPDF_Success(t *testing.T) {
	router := newRouter(func(data []byte) (string, error) {
		return "Glucose: " + string(data), nil
	})

	body, ct := multipartBody(t, FileField, "labs.pdf", []byte("130"))
	req := httptest.NewRequest(http.MethodPost, Path, body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"text": "Glucose: 130"}, decode(t, w))
}

func TestExtractPDF_NoFile(t *testing.T) {
	router := newRouter(func([]byte) (string, error) { return "", nil })

	body, ct := multipartBody(t, "", "", nil)
	req := httptest.NewRequest(http.MethodPost, Path, body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]string{"error": "No file uploaded"}, decode(t, w))
}

func TestExtractPDF_LegacyFieldNameRejected(t *testing.T) {
	router := newRouter(func([]byte) (string, error) { return "ok", nil })

	body, ct := multipartBody(t, "pdf", "labs.pdf", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, Path, body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractPDF_ExtractionFailure(t *testing.T) {
	router := newRouter(func([]byte) (string, error) { return "", errors.New("bad xref table") })

	body, ct := multipartBody(t, FileField, "labs.pdf", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, Path, body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]string{"error": "Failed to extract PDF", "details": "bad xref table"}, decode(t, w))
}

func TestExtractPDF_DefaultExtractorRejectsGarbage(t *testing.T) {
	router := newRouter(nil)

	body, ct := multipartBody(t, FileField, "labs.pdf", []byte("definitely not a pdf"))
	req := httptest.NewRequest(http.MethodPost, Path, body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to extract PDF", decode(t, w)["error"])
}
