package models

import "gorm.io/gorm"

type IssueStatus string

const (
	IssueStatusOpen        IssueStatus = "open"
	IssueStatusUnderReview IssueStatus = "under_review"
	IssueStatusResolved    IssueStatus = "resolved"
	IssueStatusClosed      IssueStatus = "closed"
)

type Issue struct {
	gorm.Model
	ReporterID  uint        `json:"reporterId" gorm:"not null;index"`
	Reporter    User        `json:"reporter"`
	BookingID   *uint       `json:"bookingId"`
	Type        string      `json:"type" gorm:"not null"`
	Description string      `json:"description" gorm:"not null"`
	Priority    string      `json:"priority" gorm:"default:'normal'"`
	Status      IssueStatus `json:"status" gorm:"not null;default:'open'"`
}

// issueTransitions lists the permitted moderation moves. Reopening a resolved
// issue is allowed.
var issueTransitions = map[IssueStatus][]IssueStatus{
	IssueStatusOpen:        {IssueStatusUnderReview, IssueStatusClosed},
	IssueStatusUnderReview: {IssueStatusResolved, IssueStatusClosed},
	IssueStatusResolved:    {IssueStatusOpen, IssueStatusClosed},
}

// Transition moves the issue to next if the moderation flow permits it.
func (i *Issue) Transition(next IssueStatus) error {
	for _, allowed := range issueTransitions[i.Status] {
		if allowed == next {
			i.Status = next
			return nil
		}
	}
	return ErrInvalidIssueStatus
}
