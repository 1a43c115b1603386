package handler

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hitoshi/tasktimer/internal/account"
	"github.com/hitoshi/tasktimer/internal/model"
	"github.com/hitoshi/tasktimer/internal/task"
	"github.com/hitoshi/tasktimer/internal/timelog"
)

// 入力値の上限・下限
const (
	maxEmailLength       = 320
	minUsernameLength    = 3
	maxUsernameLength    = 64
	minPasswordLength    = 8
	maxPasswordBytes     = 72 // bcryptが扱える上限
	maxTitleLength       = 200
	maxDescriptionLength = 5000
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// normalizeEmail は前後の空白を除き小文字化する。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) *model.APIError {
	if email == "" {
		return model.NewValidationError("email is required")
	}
	if len(email) > maxEmailLength {
		return model.NewValidationError("email is too long")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return model.NewValidationError("email is not a valid address")
	}
	return nil
}

func validateUsername(username string) *model.APIError {
	if username == "" {
		return model.NewValidationError("username is required")
	}
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return model.NewValidationError("username must be between " +
			strconv.Itoa(minUsernameLength) + " and " + strconv.Itoa(maxUsernameLength) + " characters")
	}
	if !usernamePattern.MatchString(username) {
		return model.NewValidationError("username may contain only letters, digits, '_', '.' and '-'")
	}
	return nil
}

func validatePassword(password string) *model.APIError {
	if password == "" {
		return model.NewValidationError("password is required")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return model.NewValidationError("password must be at least " + strconv.Itoa(minPasswordLength) + " characters")
	}
	if len(password) > maxPasswordBytes {
		return model.NewValidationError("password is too long")
	}
	return nil
}

// validateSignUpRequest はサインアップ入力を正規化して検証する。
func validateSignUpRequest(req *account.SignUpRequest) *model.APIError {
	req.Email = normalizeEmail(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if apiErr := validateEmail(req.Email); apiErr != nil {
		return apiErr
	}
	if apiErr := validateUsername(req.Username); apiErr != nil {
		return apiErr
	}
	return validatePassword(req.Password)
}

// validateSignInRequest はサインイン入力の必須項目を検証する。
// emailとして扱う場合は正規化する。
func validateSignInRequest(req *account.SignInRequest) *model.APIError {
	req.Identifier = strings.TrimSpace(req.Identifier)
	if strings.Contains(req.Identifier, "@") {
		req.Identifier = normalizeEmail(req.Identifier)
	}

	if req.Identifier == "" {
		return model.NewValidationError("identifier is required")
	}
	if req.Password == "" {
		return model.NewValidationError("password is required")
	}
	return nil
}

// validateUpdateAccountRequest は指定されたフィールドのみを検証する。
func validateUpdateAccountRequest(req *account.UpdateAccountRequest) *model.APIError {
	if req.Email == nil && req.Username == nil && req.Password == nil {
		return model.NewValidationError("at least one of email, username or password is required")
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
		if apiErr := validateEmail(email); apiErr != nil {
			return apiErr
		}
	}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		req.Username = &username
		if apiErr := validateUsername(username); apiErr != nil {
			return apiErr
		}
	}
	if req.Password != nil {
		if apiErr := validatePassword(*req.Password); apiErr != nil {
			return apiErr
		}
	}
	return nil
}

func validateTitle(title string) *model.APIError {
	if strings.TrimSpace(title) == "" {
		return model.NewValidationError("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return model.NewValidationError("title must be at most " + strconv.Itoa(maxTitleLength) + " characters")
	}
	return nil
}

func validateDescription(description string) *model.APIError {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return model.NewValidationError("description must be at most " + strconv.Itoa(maxDescriptionLength) + " characters")
	}
	return nil
}

func validateStatus(status model.TaskStatus) *model.APIError {
	if !status.Valid() {
		return model.NewValidationError("status must be one of todo, in_progress, done")
	}
	return nil
}

func validateCreateTaskRequest(req *task.CreateTaskRequest) *model.APIError {
	if apiErr := validateTitle(req.Title); apiErr != nil {
		return apiErr
	}
	if apiErr := validateDescription(req.Description); apiErr != nil {
		return apiErr
	}
	if req.Status != "" {
		return validateStatus(req.Status)
	}
	return nil
}

func validateUpdateTaskRequest(req *task.UpdateTaskRequest) *model.APIError {
	if req.Title == nil && req.Description == nil && req.Status == nil {
		return model.NewValidationError("at least one of title, description or status is required")
	}
	if req.Title != nil {
		if apiErr := validateTitle(*req.Title); apiErr != nil {
			return apiErr
		}
	}
	if req.Description != nil {
		if apiErr := validateDescription(*req.Description); apiErr != nil {
			return apiErr
		}
	}
	if req.Status != nil {
		return validateStatus(*req.Status)
	}
	return nil
}

func validateCreateTimeLogRequest(req *timelog.CreateTimeLogRequest) *model.APIError {
	req.Task.ID = strings.TrimSpace(req.Task.ID)
	if req.StartedAt.IsZero() {
		return model.NewValidationError("started_at is required")
	}
	if req.Task.ID == "" {
		return model.NewValidationError("task.id is required")
	}
	return nil
}

// parsePage はクエリパラメータlimit・offsetを解析する。
// 未指定の項目はゼロ値のままにし、ユースケース側の既定値に委ねる。
func parsePage(limitParam, offsetParam string) (model.Page, *model.APIError) {
	var page model.Page
	if limitParam != "" {
		n, err := strconv.Atoi(limitParam)
		if err != nil || n < 0 {
			return model.Page{}, model.NewValidationError("limit must be a non-negative integer")
		}
		page.Limit = n
	}
	if offsetParam != "" {
		n, err := strconv.Atoi(offsetParam)
		if err != nil || n < 0 {
			return model.Page{}, model.NewValidationError("offset must be a non-negative integer")
		}
		page.Offset = n
	}
	return page, nil
}
