package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/tasktimer/internal/account"
	"github.com/hitoshi/tasktimer/internal/metrics"
	"github.com/hitoshi/tasktimer/internal/model"
)

// AccountServiceInterface はアカウントハンドラーが必要とするサービスインターフェース。
type AccountServiceInterface interface {
	SignUp(ctx context.Context, req account.SignUpRequest) (*account.SignUpResponse, error)
	SignIn(ctx context.Context, req account.SignInRequest) (*account.SignInResponse, error)
	FindAccount(ctx context.Context, userID string) (*account.AccountResponse, error)
	UpdateAccount(ctx context.Context, userID string, req account.UpdateAccountRequest) (*account.AccountResponse, error)
	DeleteAccount(ctx context.Context, userID string) (*account.DeleteAccountResponse, error)
}

// AccountRecorder はサインアップ・サインインの結果を記録する。
type AccountRecorder interface {
	RecordSignUp(outcome string)
	RecordSignIn(outcome string)
}

// AccountHandler はアカウント関連のHTTPハンドラー。
type AccountHandler struct {
	service AccountServiceInterface
	metrics AccountRecorder
}

// NewAccountHandler はAccountHandlerを生成する。
func NewAccountHandler(service AccountServiceInterface, recorder AccountRecorder) *AccountHandler {
	if recorder == nil {
		recorder = metrics.NopCollector{}
	}
	return &AccountHandler{
		service: service,
		metrics: recorder,
	}
}

// SignUp はアカウントを登録する。
// POST /api/accounts/sign-up
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req account.SignUpRequest
	if apiErr := decodeJSON(w, r, &req, false); apiErr != nil {
		h.metrics.RecordSignUp(metrics.OutcomeInvalid)
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateSignUpRequest(&req); apiErr != nil {
		h.metrics.RecordSignUp(metrics.OutcomeInvalid)
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	resp, err := h.service.SignUp(r.Context(), req)
	if err != nil {
		h.metrics.RecordSignUp(outcomeOf(err))
		handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordSignUp(metrics.OutcomeSuccess)
	writeJSON(w, http.StatusCreated, resp)
}

// SignIn はemailまたはusernameとパスワードで認証し、アクセストークンを返す。
// POST /api/accounts/sign-in
func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req account.SignInRequest
	if apiErr := decodeJSON(w, r, &req, false); apiErr != nil {
		h.metrics.RecordSignIn(metrics.OutcomeInvalid)
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateSignInRequest(&req); apiErr != nil {
		h.metrics.RecordSignIn(metrics.OutcomeInvalid)
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	resp, err := h.service.SignIn(r.Context(), req)
	if err != nil {
		h.metrics.RecordSignIn(outcomeOf(err))
		handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordSignIn(metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, resp)
}

// Me は認証済みユーザーのアカウントを返す。
// GET /api/accounts/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.FindAccount(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateMe は認証済みユーザーのアカウントを部分更新する。
// PATCH /api/accounts/me
func (h *AccountHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req account.UpdateAccountRequest
	if apiErr := decodeJSON(w, r, &req, false); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := validateUpdateAccountRequest(&req); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	resp, err := h.service.UpdateAccount(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteMe は認証済みユーザーのアカウントを削除する。
// 所有するタスクと時間ログも削除される。
// DELETE /api/accounts/me
func (h *AccountHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.DeleteAccount(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// outcomeOf はエラー種別をメトリクスの結果ラベルに変換する。
func outcomeOf(err error) string {
	switch {
	case model.IsConflict(err):
		return metrics.OutcomeConflict
	case model.IsUnauthorized(err):
		return metrics.OutcomeUnauthorized
	case model.IsInternal(err):
		return metrics.OutcomeError
	default:
		return metrics.OutcomeInvalid
	}
}
