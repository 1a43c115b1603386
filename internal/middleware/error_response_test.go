package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/tasktimer/internal/model"
)

// TestWriteErrorResponse_WritesUnifiedFormat は統一エラーフォーマットでレスポンスが書き込まれることを検証する。
func TestWriteErrorResponse_WritesUnifiedFormat(t *testing.T) {
	w := httptest.NewRecorder()

	WriteErrorResponse(w, http.StatusConflict, model.NewConflictError("account", "Email already exists"))

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var body ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body.Code != "CONFLICT" || body.Message != "Email already exists" || body.Category != "account" || body.Action == "" {
		t.Errorf("body = %+v", body)
	}
}

// TestWriteErrorResponse_OmitsCause は原因エラーがレスポンスに含まれないことを検証する。
func TestWriteErrorResponse_OmitsCause(t *testing.T) {
	w := httptest.NewRecorder()
	apiErr := model.NewInternalError("account", "Failed to create account: ACCOUNT_REPOSITORY_ERROR").
		WithCause(&testCause{msg: "pq: connection refused"})

	WriteErrorResponse(w, http.StatusInternalServerError, apiErr)

	if strings.Contains(w.Body.String(), "connection refused") {
		t.Errorf("response leaked cause: %s", w.Body.String())
	}
}

func TestWriteInternalServerError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteInternalServerError(w)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	var body ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body.Code != "INTERNAL_ERROR" || body.Category != "system" {
		t.Errorf("body = %+v", body)
	}
}

type testCause struct{ msg string }

func (e *testCause) Error() string { return e.msg }
