package domain

import (
	"errors"
	"time"
)

var ErrWorkEntryNotFound = errors.New("work entry not found")

// DateLayout is the wire and storage format of WorkEntry.Date.
const DateLayout = "2006-01-02"

type WorkEntry struct {
	ID          int64
	UserID      string
	ClientID    int64
	ClientName  string
	Hours       float64
	Description *string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
