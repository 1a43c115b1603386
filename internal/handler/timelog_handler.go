package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/tasktimer/internal/metrics"
	"github.com/hitoshi/tasktimer/internal/model"
	"github.com/hitoshi/tasktimer/internal/timelog"
)

// TimeLogServiceInterface は時間ログハンドラーが必要とするサービスインターフェース。
type TimeLogServiceInterface interface {
	StartTimeLog(ctx context.Context, userID string, req timelog.CreateTimeLogRequest) (*timelog.TimeLogResponse, error)
	StopTimeLog(ctx context.Context, userID, timeLogID string, req timelog.StopTimeLogRequest) (*timelog.TimeLogResponse, error)
	GetTimeLog(ctx context.Context, userID, timeLogID string) (*timelog.TimeLogResponse, error)
	ListTimeLogs(ctx context.Context, userID, taskID string, page model.Page) (*timelog.TimeLogListResponse, error)
	DeleteTimeLog(ctx context.Context, userID, timeLogID string) (*timelog.DeleteTimeLogResponse, error)
}

// TimeTrackedRecorder は停止された時間ログの計測時間を記録する。
type TimeTrackedRecorder interface {
	RecordTimeTracked(duration time.Duration)
}

// TimeLogHandler は時間計測のHTTPハンドラー。
type TimeLogHandler struct {
	service TimeLogServiceInterface
	metrics TimeTrackedRecorder
}

// NewTimeLogHandler はTimeLogHandlerを生成する。
func NewTimeLogHandler(service TimeLogServiceInterface, recorder TimeTrackedRecorder) *TimeLogHandler {
	if recorder == nil {
		recorder = metrics.NopCollector{}
	}
	return &TimeLogHandler{
		service: service,
		metrics: recorder,
	}
}

// StartTimeLog はタスクの計測を開始する。
// POST /api/time-logs
func (h *TimeLogHandler) StartTimeLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req timelog.CreateTimeLogRequest
	if apiErr := decodeJSON(w, r, &req, false); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateCreateTimeLogRequest(&req); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	resp, err := h.service.StartTimeLog(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// StopTimeLog は計測を停止する。ボディを省略した場合は現在時刻で停止する。
// POST /api/time-logs/{id}/stop
func (h *TimeLogHandler) StopTimeLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req timelog.StopTimeLogRequest
	if apiErr := decodeJSON(w, r, &req, true); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	resp, err := h.service.StopTimeLog(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if resp.DurationSeconds != nil {
		h.metrics.RecordTimeTracked(time.Duration(*resp.DurationSeconds) * time.Second)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetTimeLog は時間ログを1件返す。
// GET /api/time-logs/{id}
func (h *TimeLogHandler) GetTimeLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetTimeLog(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListTimeLogs はタスクの時間ログ一覧を返す。
// GET /api/tasks/{id}/time-logs?limit=&offset=
func (h *TimeLogHandler) ListTimeLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, apiErr := parsePage(q.Get("limit"), q.Get("offset"))
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	resp, err := h.service.ListTimeLogs(r.Context(), userID, chi.URLParam(r, "id"), page)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteTimeLog は時間ログを削除する。
// DELETE /api/time-logs/{id}
func (h *TimeLogHandler) DeleteTimeLog(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.DeleteTimeLog(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
