package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "database exploded", errors.New("sql: no rows"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, ErrInternalServerError) {
		t.Errorf("expected user message in body, got %q", body)
	}
	if strings.Contains(body, "sql") {
		t.Error("internal error detail leaked to the client")
	}
}

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	respondWithJSON(w, http.StatusCreated, map[string]string{"status": "ok"})

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestRespondWithJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	respondWithJSONError(w, http.StatusNotFound, ErrPetNotFound, "", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != ErrPetNotFound {
		t.Errorf("expected %q, got %q", ErrPetNotFound, body["error"])
	}
}
