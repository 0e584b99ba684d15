package signup

import "time"

// DeclineLog records a declined signup. Entries are write-once.
type DeclineLog struct {
	ID         string
	EmployeeID int64
	DeclinedBy int64
	Email      string
	FirstName  string
	LastName   string
	DeclinedAt time.Time
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionDecline Action = "decline"
)
