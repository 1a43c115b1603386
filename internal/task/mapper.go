package task

import "github.com/hitoshi/tasktimer/internal/model"

// Sanitizer は利用者入力のテキストを無害化する。
type Sanitizer interface {
	Sanitize(input string) string
}

// Mapper はタスクのDTOとエンティティを相互変換する。
// 入力側のテキストはエンティティ化の時点で無害化する。
type Mapper struct {
	sanitizer Sanitizer
}

// NewMapper はMapperを生成する。
func NewMapper(sanitizer Sanitizer) Mapper {
	return Mapper{sanitizer: sanitizer}
}

// ToEntity は作成リクエストから所有者付きのTaskを生成する。
func (m Mapper) ToEntity(req CreateTaskRequest, userID string) *model.Task {
	status := req.Status
	if status == "" {
		status = model.TaskStatusTodo
	}
	return &model.Task{
		UserID:      userID,
		Title:       m.sanitizer.Sanitize(req.Title),
		Description: m.sanitizer.Sanitize(req.Description),
		Status:      status,
	}
}

// Apply は更新リクエストのうち指定されたフィールドをtに反映する。
func (m Mapper) Apply(t *model.Task, req UpdateTaskRequest) {
	if req.Title != nil {
		t.Title = m.sanitizer.Sanitize(*req.Title)
	}
	if req.Description != nil {
		t.Description = m.sanitizer.Sanitize(*req.Description)
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
}

// ToResponse はTaskをTaskResponseに変換する。
func (m Mapper) ToResponse(t *model.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
