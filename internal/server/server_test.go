package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-exporter/internal/model"
	"github.com/rezonia/invoice-exporter/internal/server"
)

func newTestServer() *server.Server {
	config := &server.Config{
		Address:         ":8080",
		Debug:           true,
		OversampleScale: 1,
	}
	return server.NewServer(config)
}

func snapshotBody(t *testing.T, mutate func(*model.Snapshot)) *bytes.Reader {
	t.Helper()

	snap := model.Snapshot{
		Invoice: model.Invoice{
			Number:    "2024-0007",
			IssueDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Subtotal:  decimal.NewFromInt(500),
			TaxRate:   decimal.NewFromInt(25),
			TaxAmount: decimal.NewFromInt(125),
			Total:     decimal.NewFromInt(625),
			Currency:  "NOK",
			Items: []model.InvoiceItem{
				{Description: "Widgets", Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(100), Amount: decimal.NewFromInt(500)},
			},
		},
		Client:  model.Client{Name: "Acme & Co", OrgNumber: "987654321"},
		Company: &model.CompanyProfile{Name: "Rezonia AS", OrgNumber: "123456789"},
	}
	if mutate != nil {
		mutate(&snap)
	}

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestExportXMLEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/export/xml", snapshotBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "2024-0007-ehf-2024-02-01.xml")
	assert.True(t, strings.HasPrefix(w.Body.String(), `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, w.Body.String(), "cbc:CustomizationID")
}

func TestExportXMLEndpoint_MissingOrgNumber(t *testing.T) {
	srv := newTestServer()

	body := snapshotBody(t, func(s *model.Snapshot) { s.Company.OrgNumber = "" })
	req := httptest.NewRequest(http.MethodPost, "/api/v1/export/xml", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["error"], "organization number")
}

func TestExportPDFEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/export/pdf", snapshotBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "2024-0007-acme-co-2024-02-01.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestValidateEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", snapshotBody(t, nil))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Valid)
}

func TestValidateEndpoint_Invalid(t *testing.T) {
	srv := newTestServer()

	body := snapshotBody(t, func(s *model.Snapshot) { s.Company = nil })
	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response server.ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Valid)
	assert.NotEmpty(t, response.Error)
}

func TestExportEndpoints_BadPayload(t *testing.T) {
	srv := newTestServer()

	for _, path := range []string{"/api/v1/export/xml", "/api/v1/export/pdf", "/api/v1/validate"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		srv.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}
