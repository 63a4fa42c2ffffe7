package handler

import (
	"time"

	"noticebase/internal/records/models"
)

type DriverResponse struct {
	DriverID      int64  `json:"driver_id"`
	LicenceNumber string `json:"licence_number"`
	StateIssue    string `json:"state_issue"`
	LastName      string `json:"last_name"`
	FirstName     string `json:"first_name"`
	DOB           Date   `json:"dob"`
	HeightInches  int    `json:"height_inches"`
	WeightPounds  int    `json:"weight_pounds"`
	EyesColour    string `json:"eyes_colour"`
}

func toDriverResponse(driverID int64, d models.Driver) DriverResponse {
	return DriverResponse{
		DriverID:      driverID,
		LicenceNumber: d.LicenceNumber,
		StateIssue:    d.StateIssue,
		LastName:      d.LastName,
		FirstName:     d.FirstName,
		DOB:           Date{d.DOB},
		HeightInches:  d.HeightInches,
		WeightPounds:  d.WeightPounds,
		EyesColour:    d.EyesColour,
	}
}

type NoticeResponse struct {
	NoticeID             string              `json:"notice_id"`
	CarID                int64               `json:"car_id"`
	ViolationDateTime    time.Time           `json:"violation_date_time"`
	Detachment           string              `json:"detachment"`
	ViolationSeverity    models.Severity     `json:"violation_severity"`
	NoticeStatus         models.NoticeStatus `json:"notice_status"`
	NotificationSent     bool                `json:"notification_sent"`
	EntryDate            Date                `json:"entry_date"`
	ExpiryDate           Date                `json:"expiry_date"`
	ViolationDescription string              `json:"violation_description"`
}

func toNoticeResponse(n models.Notice) NoticeResponse {
	return NoticeResponse{
		NoticeID:             n.NoticeID,
		CarID:                n.CarID,
		ViolationDateTime:    n.ViolationDateTime,
		Detachment:           n.Detachment,
		ViolationSeverity:    n.ViolationSeverity,
		NoticeStatus:         n.NoticeStatus,
		NotificationSent:     n.NotificationSent,
		EntryDate:            Date{n.EntryDate},
		ExpiryDate:           Date{n.ExpiryDate},
		ViolationDescription: n.ViolationDescription,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}
