package timelog

import "github.com/hitoshi/tasktimer/internal/model"

// Mapper は時間ログのDTOとエンティティを相互変換する。
type Mapper struct{}

// ToEntity は計測開始リクエストからTimeLogを生成する。
func (Mapper) ToEntity(req CreateTimeLogRequest) *model.TimeLog {
	return &model.TimeLog{
		TaskID:    req.Task.ID,
		StartedAt: req.StartedAt,
	}
}

// ToResponse はTimeLogをTimeLogResponseに変換する。
func (Mapper) ToResponse(l *model.TimeLog) TimeLogResponse {
	resp := TimeLogResponse{
		ID:        l.ID,
		TaskID:    l.TaskID,
		StartedAt: l.StartedAt,
		EndedAt:   l.EndedAt,
		Running:   l.Running(),
		CreatedAt: l.CreatedAt,
	}
	if l.EndedAt != nil {
		seconds := int64(l.Duration(*l.EndedAt).Seconds())
		resp.DurationSeconds = &seconds
	}
	return resp
}
