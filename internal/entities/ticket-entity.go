package entities

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// AttachedFile - вложение тикета. Объект-значение: живет только внутри
// своего тикета, отдельно не идентифицируется и не сохраняется.
type AttachedFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	// Base64-полезная нагрузка без data-URI префикса.
	Data string `json:"data"`
}

type Ticket struct {
	ID         string        `json:"id"`
	Subject    string        `json:"subject"`
	Priority   Priority      `json:"priority"`
	Detail     string        `json:"detail"`
	Attachment *AttachedFile `json:"attachment"`
	CreatedAt  time.Time     `json:"createdAt"`
	Status     Status        `json:"status"`
}
