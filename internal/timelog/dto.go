// Package timelog はタスクに対する作業時間の計測を扱うユースケースを提供する。
package timelog

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts は受け付ける日時形式。日付のみの場合はUTCの0時として扱う。
var timestampLayouts = []string{time.RFC3339Nano, time.DateOnly}

// ParseTimestamp はRFC 3339の日時またはYYYY-MM-DDの日付を解析する。
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: want RFC 3339 or YYYY-MM-DD", s)
}

// TaskRef は時間ログが参照するタスク。
type TaskRef struct {
	ID string `json:"id"`
}

// CreateTimeLogRequest は計測開始の入力。StartedAt と Task.ID は必須。
type CreateTimeLogRequest struct {
	StartedAt time.Time `json:"started_at"`
	Task      TaskRef   `json:"task"`
}

// UnmarshalJSON はstarted_atを日時または日付として読み込む。
func (r *CreateTimeLogRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		StartedAt *string `json:"started_at"`
		Task      TaskRef `json:"task"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = CreateTimeLogRequest{Task: raw.Task}
	if raw.StartedAt != nil {
		t, err := ParseTimestamp(*raw.StartedAt)
		if err != nil {
			return fmt.Errorf("started_at: %w", err)
		}
		r.StartedAt = t
	}
	return nil
}

// StopTimeLogRequest は計測停止の入力。EndedAt が nil の場合は現在時刻で停止する。
type StopTimeLogRequest struct {
	EndedAt *time.Time `json:"ended_at,omitempty"`
}

// UnmarshalJSON はended_atを日時または日付として読み込む。
func (r *StopTimeLogRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		EndedAt *string `json:"ended_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = StopTimeLogRequest{}
	if raw.EndedAt != nil {
		t, err := ParseTimestamp(*raw.EndedAt)
		if err != nil {
			return fmt.Errorf("ended_at: %w", err)
		}
		r.EndedAt = &t
	}
	return nil
}

// TimeLogResponse は時間ログの出力。
// DurationSeconds は停止済みの場合のみ設定する。
type TimeLogResponse struct {
	ID              string     `json:"id"`
	TaskID          string     `json:"task_id"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
	Running         bool       `json:"running"`
	DurationSeconds *int64     `json:"duration_seconds,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// TimeLogListResponse は時間ログ一覧の出力。
type TimeLogListResponse struct {
	TimeLogs []TimeLogResponse `json:"time_logs"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// DeleteTimeLogResponse は時間ログ削除の確認。
type DeleteTimeLogResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
