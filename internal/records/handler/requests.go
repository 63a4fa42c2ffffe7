package handler

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"noticebase/internal/records/models"
	dErrors "noticebase/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// Date is a calendar date encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("date %q must be YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

// DriverRequest is the POST /drivers and PUT /drivers/{driverID} body.
type DriverRequest struct {
	LicenceNumber string                          `json:"licence_number"`
	StateIssue    string                          `json:"state_issue"`
	LastName      string                          `json:"last_name"`
	FirstName     string                          `json:"first_name"`
	DOB           Date                            `json:"dob"`
	HeightInches  int                             `json:"height_inches"`
	WeightPounds  int                             `json:"weight_pounds"`
	EyesColour    string                          `json:"eyes_colour"`
	Address       models.RegistrationAddressInput `json:"address"`
}

func (r *DriverRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.LicenceNumber) == "" {
		missing = append(missing, "licence_number")
	}
	if r.DOB.IsZero() {
		missing = append(missing, "dob")
	}
	if strings.TrimSpace(r.Address.ZipCode) == "" {
		missing = append(missing, "address.zip_code")
	}
	if len(missing) > 0 {
		return dErrors.New(dErrors.CodeValidation, "missing required fields: "+strings.Join(missing, ", "))
	}
	return nil
}

func (r *DriverRequest) Input() models.DriverInput {
	return models.DriverInput{
		Driver: models.Driver{
			LicenceNumber: strings.TrimSpace(r.LicenceNumber),
			StateIssue:    r.StateIssue,
			LastName:      r.LastName,
			FirstName:     r.FirstName,
			DOB:           r.DOB.Time,
			HeightInches:  r.HeightInches,
			WeightPounds:  r.WeightPounds,
			EyesColour:    r.EyesColour,
		},
		Address: r.Address,
	}
}

// NoticeRequest is the POST /notices and PUT /notices/{noticeID} body. On
// PUT the notice id comes from the path.
type NoticeRequest struct {
	NoticeID             string                       `json:"notice_id"`
	CarID                int64                        `json:"car_id"`
	ViolationDateTime    time.Time                    `json:"violation_date_time"`
	Detachment           string                       `json:"detachment"`
	ViolationSeverity    models.Severity              `json:"violation_severity"`
	NoticeStatus         models.NoticeStatus          `json:"notice_status"`
	NotificationSent     bool                         `json:"notification_sent"`
	EntryDate            Date                         `json:"entry_date"`
	ExpiryDate           Date                         `json:"expiry_date"`
	ViolationDescription string                       `json:"violation_description"`
	ViolationZip         models.ViolationZipInput     `json:"violation_zip"`
	ViolationAddress     models.ViolationAddressInput `json:"violation_address"`
}

func (r *NoticeRequest) Validate() error {
	var missing []string
	if r.CarID == 0 {
		missing = append(missing, "car_id")
	}
	if strings.TrimSpace(r.ViolationZip.ZipCode) == "" {
		missing = append(missing, "violation_zip.zip_code")
	}
	if len(missing) > 0 {
		return dErrors.New(dErrors.CodeValidation, "missing required fields: "+strings.Join(missing, ", "))
	}
	return nil
}

func (r *NoticeRequest) Input() models.NoticeInput {
	return models.NoticeInput{
		Notice: models.Notice{
			NoticeID:             strings.TrimSpace(r.NoticeID),
			CarID:                r.CarID,
			ViolationDateTime:    r.ViolationDateTime,
			Detachment:           r.Detachment,
			ViolationSeverity:    r.ViolationSeverity,
			NoticeStatus:         r.NoticeStatus,
			NotificationSent:     r.NotificationSent,
			EntryDate:            r.EntryDate.Time,
			ExpiryDate:           r.ExpiryDate.Time,
			ViolationDescription: r.ViolationDescription,
		},
		ViolationZip:     r.ViolationZip,
		ViolationAddress: r.ViolationAddress,
	}
}
