package domain

import "time"

// Workday is a bounded work session. It may cross midnight — a session that
// starts at 22:00 and closes at 04:00 is one workday.
// At most one workday is open (IsClosed == false) at any time — enforced by
// a partial unique index on workdays.
type Workday struct {
	ID        int64      `json:"id"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"` // nil while the workday is open
	IsClosed  bool       `json:"isClosed"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Open reports whether the workday is still open.
func (w Workday) Open() bool {
	return !w.IsClosed
}
