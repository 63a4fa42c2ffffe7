package models

import "time"

// Severity grades a violation.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// NoticeStatus is the lifecycle state of a notice.
type NoticeStatus string

const (
	NoticeStatusActive   NoticeStatus = "Active"
	NoticeStatusResolved NoticeStatus = "Resolved"
	NoticeStatusExpired  NoticeStatus = "Expired"
)

func (s NoticeStatus) IsValid() bool {
	switch s {
	case NoticeStatusActive, NoticeStatusResolved, NoticeStatusExpired:
		return true
	}
	return false
}

// Notice holds the notice_info fields. NoticeID is supplied by the issuing
// officer, not generated.
type Notice struct {
	NoticeID             string       `json:"notice_id"`
	CarID                int64        `json:"car_id"`
	ViolationDateTime    time.Time    `json:"violation_date_time"`
	Detachment           string       `json:"detachment"`
	ViolationSeverity    Severity     `json:"violation_severity"`
	NoticeStatus         NoticeStatus `json:"notice_status"`
	NotificationSent     bool         `json:"notification_sent"`
	EntryDate            time.Time    `json:"entry_date"`
	ExpiryDate           time.Time    `json:"expiry_date"`
	ViolationDescription string       `json:"violation_description"`
}

// NoticeRecord is a notice row as read back from the store.
type NoticeRecord struct {
	AddressID int64 `json:"-"`
	Notice
}

// NoticeInput is everything needed to create or fully replace a notice.
type NoticeInput struct {
	Notice           Notice
	ViolationZip     ViolationZipInput
	ViolationAddress ViolationAddressInput
}
