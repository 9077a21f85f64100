package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
)

func TestRespondError(t *testing.T) {
	t.Run("writes error and details", func(t *testing.T) {
		w := httptest.NewRecorder()

		response.RespondError(w, http.StatusNotFound, "investment not found", "no such id")

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body["error"] != "investment not found" || body["details"] != "no such id" {
			t.Errorf("Unexpected body: %v", body)
		}
	})

	t.Run("omits nil details", func(t *testing.T) {
		w := httptest.NewRecorder()

		response.RespondError(w, http.StatusBadRequest, "bad", nil)

		var body map[string]any
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if _, ok := body["details"]; ok {
			t.Errorf("Expected details to be omitted, got %v", body)
		}
	})
}

func TestRespondJSON(t *testing.T) {
	t.Run("nil data writes only the status", func(t *testing.T) {
		w := httptest.NewRecorder()

		response.RespondJSON(w, http.StatusNoContent, nil)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("Expected empty body, got %q", w.Body.String())
		}
	})

	t.Run("un-encodable data keeps the status", func(t *testing.T) {
		w := httptest.NewRecorder()

		response.RespondJSON(w, http.StatusOK, make(chan int))

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})
}
