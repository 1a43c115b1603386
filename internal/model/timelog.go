package model

import "time"

// TimeLog はタスクに対する1回分の計測区間を表す。
// EndedAt が nil の間は計測中とみなす。
type TimeLog struct {
	ID        string
	TaskID    string
	StartedAt time.Time
	EndedAt   *time.Time
	CreatedAt time.Time
}

// Running は計測中かどうかを返す。
func (l *TimeLog) Running() bool {
	return l.EndedAt == nil
}

// Duration は計測区間の長さを返す。計測中の場合は now までの経過時間を返す。
func (l *TimeLog) Duration(now time.Time) time.Duration {
	if l.EndedAt != nil {
		return l.EndedAt.Sub(l.StartedAt)
	}
	return now.Sub(l.StartedAt)
}
