package domain

import (
	"errors"
	"time"
)

var ErrJobNotFound = errors.New("job not found")

type Status string

const (
	StatusInterview Status = "interview"
	StatusDeclined  Status = "declined"
	StatusPending   Status = "pending"
)

// Statuses lists every valid Status, in display order.
var Statuses = []Status{StatusInterview, StatusDeclined, StatusPending}

type Job struct {
	ID        string
	Company   string
	Position  string
	Status    Status
	CreatedBy string // owner user ID, set once at creation
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobPatch carries the mutable job fields. Nil means "leave unchanged".
type JobPatch struct {
	Company  *string
	Position *string
	Status   *Status
}

func (p JobPatch) Empty() bool {
	return p.Company == nil && p.Position == nil && p.Status == nil
}
