package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docinsight/internal/config"
	"docinsight/internal/insight"
	"docinsight/internal/model"
	"docinsight/internal/repository/memory"
	"docinsight/internal/service"
	"docinsight/internal/storage"
)

// newTestApp wires the real service stack with zero analyzer delays.
func newTestApp(t *testing.T, failureRate float64) *fiber.App {
	t.Helper()

	analyzer, err := insight.NewCanned(config.AnalyzerConfig{Seed: 1, FailureRate: failureRate})
	require.NoError(t, err)

	repo := memory.NewDocumentMemory()
	svc := service.NewDocumentService(storage.NewDiscard(), analyzer, repo, config.DefaultMaxUploadBytes)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, svc)
	return app
}

func TestUploadListDeleteWorkflow(t *testing.T) {
	app := newTestApp(t, 0)

	// Upload one document.
	body, ct := pdfUploadBody(t, "jane_doe.pdf", "application/pdf", "%PDF-1.4 fake content")
	req := httptest.NewRequest(http.MethodPost, "/upload-resume", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var uploaded model.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	assert.NotEmpty(t, uploaded.ID)
	assert.Equal(t, "jane_doe.pdf", uploaded.Filename)
	assert.Equal(t, model.StatusCompleted, uploaded.ProcessingStatus)
	assert.NotEmpty(t, uploaded.Insights.Summary)
	assert.NotEmpty(t, uploaded.SizeLabel)

	// It shows up in the history list.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/insights", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list service.DocumentListResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, uploaded.ID, list.Items[0].ID)

	// Search hits and misses.
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/insights?q=jane", nil), -1)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, 1, list.Total)

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/insights?q=nomatch", nil), -1)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, 0, list.Total)

	// Fetch by ID, then delete.
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/insights/"+uploaded.ID, nil), -1)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodDelete, "/insights/"+uploaded.ID, nil), -1)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Gone from the history.
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/insights/"+uploaded.ID, nil), -1)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/insights", nil), -1)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, 0, list.Total)
}

func TestUploadWorkflow_AnalysisFailure(t *testing.T) {
	app := newTestApp(t, 1)

	body, ct := pdfUploadBody(t, "resume.pdf", "application/pdf", "%PDF-1.4 fake")
	req := httptest.NewRequest(http.MethodPost, "/upload-resume", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var doc model.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, model.StatusFailed, doc.ProcessingStatus)
	assert.Equal(t, "Analysis failed. Please try again.", doc.ErrorMessage)

	// The failed record is part of the history and can be deleted.
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/insights", nil), -1)
	var list service.DocumentListResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, 1, list.Total)

	resp, _ = app.Test(httptest.NewRequest(http.MethodDelete, "/insights/"+doc.ID, nil), -1)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestUploadWorkflow_RejectsNonPDF(t *testing.T) {
	app := newTestApp(t, 0)

	body, ct := pdfUploadBody(t, "notes.txt", "text/plain", "plain text")
	req := httptest.NewRequest(http.MethodPost, "/upload-resume", body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var res errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, "INVALID_FILE_TYPE", res.Error.Code)

	// Rejected uploads leave no trace in the history.
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/insights", nil), -1)
	var list service.DocumentListResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, 0, list.Total)
}

func TestUploadWorkflow_NewestFirstOrdering(t *testing.T) {
	app := newTestApp(t, 0)

	for _, name := range []string{"first.pdf", "second.pdf", "third.pdf"} {
		body, ct := pdfUploadBody(t, name, "application/pdf", strings.Repeat("x", 64))
		req := httptest.NewRequest(http.MethodPost, "/upload-resume", body)
		req.Header.Set("Content-Type", ct)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/insights", nil), -1)
	var list service.DocumentListResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Items, 3)
	assert.Equal(t, "third.pdf", list.Items[0].Filename)
	assert.Equal(t, "first.pdf", list.Items[2].Filename)
}
