package domain

import "time"

// CopyStatus is the circulation state of a physical copy.
type CopyStatus string

// Copy statuses.
const (
	StatusAvailable   CopyStatus = "Available"
	StatusMaintenance CopyStatus = "Maintenance"
	StatusLoaned      CopyStatus = "Loaned"
	StatusReserved    CopyStatus = "Reserved"
)

// CopyStatuses lists every status in display order.
var CopyStatuses = []CopyStatus{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

// IsValid reports whether s is a known status.
func (s CopyStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved:
		return true
	}
	return false
}

// OnLoan reports whether a due-back date is meaningful for s.
func (s CopyStatus) OnLoan() bool {
	return s == StatusLoaned || s == StatusReserved
}

// BookCopy is a physical copy of a Book.
type BookCopy struct {
	Record
	BookID  string     `json:"book"`
	Imprint string     `json:"imprint"`
	Status  CopyStatus `json:"status"`
	DueBack *time.Time `json:"due_back,omitempty"`
}

// URL returns the detail page locator.
func (c BookCopy) URL() string {
	return "/catalog/bookinstance/" + c.ID
}

// DueBackFormatted returns the due-back date for display, "NA" if unset.
func (c BookCopy) DueBackFormatted() string {
	return FormatDate(c.DueBack, UnknownDate)
}

// DueBackISO returns the due-back date as YYYY-MM-DD for form pre-fill.
func (c BookCopy) DueBackISO() string {
	return ISODate(c.DueBack)
}
