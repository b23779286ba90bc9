package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"couponview/csv"
	"couponview/loader"
	"couponview/server"
	"couponview/sheets"
)

// MockSource is a testify mock of sheets.Source.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func newTestServer(t *testing.T, src sheets.Source) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	views := loader.New(src, csv.NewParser(), loader.Options{})
	srv := httptest.NewServer(server.New(logger, views))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, new(MockSource))

	status, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestStorePage(t *testing.T) {
	src := new(MockSource)
	src.On("Fetch", mock.Anything, "stores/publix.csv").Return([]byte("brand_name,product_name\nACME,Widget\n"), nil)
	src.On("Fetch", mock.Anything, "stores/publix-matchups.csv").Return(nil, sheets.NotFoundError("stores/publix-matchups.csv"))
	srv := newTestServer(t, src)

	status, body := get(t, srv.URL+"/stores/publix")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `<h5 id="sheetModalLabel">Publix</h5>`)
	assert.Equal(t, 1, strings.Count(body, `<div class="coupon-card">`))
	assert.NotContains(t, body, `<div class="alert alert-danger">`)
}

func TestStorePage_MissingBaseSheet(t *testing.T) {
	src := new(MockSource)
	src.On("Fetch", mock.Anything, mock.Anything).Return(nil, sheets.NotFoundError("stores/nowhere.csv"))
	srv := newTestServer(t, src)

	status, body := get(t, srv.URL+"/stores/nowhere")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, strings.Count(body, `<div class="alert alert-danger">`))
	assert.NotContains(t, body, `<div class="coupon-card">`)
}

func TestStoreJSON(t *testing.T) {
	src := new(MockSource)
	src.On("Fetch", mock.Anything, "stores/publix.csv").Return([]byte("brand_name,product_name,requires_store_card\nN/A,soap,1\n"), nil)
	src.On("Fetch", mock.Anything, "stores/publix-matchups.csv").Return([]byte("product_name\nbread\n"), nil)
	srv := newTestServer(t, src)

	status, body := get(t, srv.URL+"/api/stores/publix")
	require.Equal(t, http.StatusOK, status)

	var view struct {
		Label string `json:"label"`
		Cards []struct {
			IsMatchup    bool   `json:"isMatchup"`
			Header       string `json:"header"`
			RequiresCard bool   `json:"requiresCard"`
		} `json:"cards"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	assert.Equal(t, "Publix", view.Label)
	assert.Empty(t, view.Error)
	require.Len(t, view.Cards, 2)
	assert.Equal(t, "Bread", view.Cards[0].Header)
	assert.True(t, view.Cards[0].IsMatchup)
	assert.Equal(t, "Soap", view.Cards[1].Header)
	assert.True(t, view.Cards[1].RequiresCard)
}

func TestStoreJSON_Statuses(t *testing.T) {
	missing := new(MockSource)
	missing.On("Fetch", mock.Anything, mock.Anything).Return(nil, sheets.NotFoundError("x"))

	broken := new(MockSource)
	broken.On("Fetch", mock.Anything, "stores/acme.csv").Return(nil, errors.New("upstream down"))
	broken.On("Fetch", mock.Anything, "stores/acme-matchups.csv").Return(nil, sheets.NotFoundError("x"))

	status, body := get(t, newTestServer(t, missing).URL+"/api/stores/acme")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Error loading sheet")

	status, body = get(t, newTestServer(t, broken).URL+"/api/stores/acme")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Contains(t, body, "upstream down")
}
