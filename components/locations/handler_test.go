package locations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type handlerResponse struct {
	Data []Option `json:"data"`
}

func TestNewHandler_EmptyQueryReturnsEmptyDataArray(t *testing.T) {
	h := NewHandler(
		WithPlaces([]string{"City Hall"}),
		WithEmptySearchMode(EmptySearchNone),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := strings.TrimSpace(res.Header.Get("Content-Type")); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	var payload handlerResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestNewHandler_SearchAndLimitClamped(t *testing.T) {
	h := NewHandler(
		WithPlaces([]string{"North Station", "North Terminal", "Northgate District", "City Hall"}),
		WithMaxLimit(2),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/locations?q=North&limit=10", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}

	var payload handlerResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Data) != 2 {
		t.Fatalf("expected 2 results, got %d: %#v", len(payload.Data), payload.Data)
	}
	if payload.Data[0].Value != "North Station" || payload.Data[0].Label != "North Station" {
		t.Fatalf("unexpected first option: %#v", payload.Data[0])
	}
	if payload.Data[1].Value != "North Terminal" || payload.Data[1].Label != "North Terminal" {
		t.Fatalf("unexpected second option: %#v", payload.Data[1])
	}
}

func TestNewHandler_CustomQueryParams(t *testing.T) {
	h := NewHandler(
		WithPlaces([]string{"City Hall", "Harbor Ferry Dock"}),
		WithSearchParam("search"),
		WithLimitParam("l"),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/locations?search=city&l=5", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}

	var payload handlerResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].Value != "City Hall" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestNewHandler_GuardRejects(t *testing.T) {
	h := NewHandler(
		WithPlaces([]string{"City Hall"}),
		WithGuard(func(r *http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/locations?q=city", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestNewHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler(WithPlaces([]string{"City Hall"}))

	req := httptest.NewRequest(http.MethodPost, "/api/locations?q=city", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestNewHandler_NegativeLimitReturnsEmptyDataArray(t *testing.T) {
	h := NewHandler(
		WithPlaces([]string{"City Hall"}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/locations?q=city&limit=-1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}
