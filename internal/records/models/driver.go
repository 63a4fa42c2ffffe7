package models

import "time"

// Driver holds the licence holder fields written to driver_details.
type Driver struct {
	LicenceNumber string    `json:"licence_number"`
	StateIssue    string    `json:"state_issue"`
	LastName      string    `json:"last_name"`
	FirstName     string    `json:"first_name"`
	DOB           time.Time `json:"dob"`
	HeightInches  int       `json:"height_inches"`
	WeightPounds  int       `json:"weight_pounds"`
	EyesColour    string    `json:"eyes_colour"`
}

// DriverRecord is a driver row as read back from the store.
type DriverRecord struct {
	DriverID  int64 `json:"driver_id"`
	AddressID int64 `json:"-"`
	Driver
}

// DriverSummary is the projection used when listing drivers.
type DriverSummary struct {
	DriverID   int64  `json:"driver_id"`
	StateIssue string `json:"state_issue"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
}

// DriverInput is everything needed to create or fully replace a driver.
type DriverInput struct {
	Driver  Driver
	Address RegistrationAddressInput
}

// Vehicle is a car_details row. Vehicles are registered elsewhere; this
// service only reads them and removes them during driver cascades.
type Vehicle struct {
	CarID    int64 `json:"car_id"`
	DriverID int64 `json:"driver_id"`
}

// Action is a legal action recorded against a notice.
type Action struct {
	ActionID int64  `json:"action_id"`
	NoticeID string `json:"notice_id"`
}
