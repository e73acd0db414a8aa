package auction

import (
	"strings"

	"paintingauction/internal/apperrors"
)

// Status is the lifecycle state of an auction.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusScheduled Status = "Scheduled"
	StatusLive      Status = "Live"
	StatusPaused    Status = "Paused"
	StatusEnded     Status = "Ended"
	StatusCancelled Status = "Cancelled"
)

var statuses = []Status{
	StatusDraft, StatusScheduled, StatusLive, StatusPaused, StatusEnded, StatusCancelled,
}

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", apperrors.Invalid("unknown auction status %q", s)
}
