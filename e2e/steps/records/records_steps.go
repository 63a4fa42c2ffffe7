package records

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Send(method, path string, body any) error
	Status() int
	GetResponseField(field string) (any, error)
}

// RegisterSteps registers driver and notice step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &recordsSteps{tc: tc}

	ctx.Step(`^I create a driver with licence "([^"]*)" living at ZIP "([^"]*)"$`, steps.createDriver)
	ctx.Step(`^I update the driver's last name to "([^"]*)"$`, steps.updateDriverLastName)
	ctx.Step(`^I fetch the driver$`, steps.fetchDriver)
	ctx.Step(`^I delete the driver$`, steps.deleteDriver)
	ctx.Step(`^I list the driver's notices$`, steps.listNotices)
	ctx.Step(`^I issue notice "([^"]*)" against car (\d+)$`, steps.issueNotice)
	ctx.Step(`^I delete notice "([^"]*)"$`, steps.deleteNotice)
}

type recordsSteps struct {
	tc       TestContext
	driverID string
	licence  string
	zip      string
}

// uniqueLicence keeps reruns against the same database from colliding.
func uniqueLicence(prefix string) string {
	return prefix + "-" + strconv.FormatInt(time.Now().UnixNano(), 36)
}

func (s *recordsSteps) driverBody(lastName string) map[string]any {
	return map[string]any{
		"licence_number": s.licence,
		"state_issue":    "NY",
		"last_name":      lastName,
		"first_name":     "Jane",
		"dob":            "1990-04-12",
		"height_inches":  66,
		"weight_pounds":  140,
		"eyes_colour":    "Brown",
		"address": map[string]any{
			"zip_code": s.zip,
			"state":    "NY",
			"city":     "NYC",
			"street":   "5th Ave",
			"house":    "10",
		},
	}
}

func (s *recordsSteps) createDriver(ctx context.Context, licence, zip string) error {
	s.licence = uniqueLicence(licence)
	s.zip = zip
	if err := s.tc.Send("POST", "/drivers", s.driverBody("Doe")); err != nil {
		return err
	}
	if s.tc.Status() != 201 {
		return nil
	}
	id, err := s.tc.GetResponseField("driver_id")
	if err != nil {
		return err
	}
	s.driverID = fmt.Sprint(id)
	return nil
}

func (s *recordsSteps) updateDriverLastName(ctx context.Context, lastName string) error {
	if s.driverID == "" {
		return fmt.Errorf("no driver created in this scenario")
	}
	return s.tc.Send("PUT", "/drivers/"+s.driverID, s.driverBody(lastName))
}

func (s *recordsSteps) fetchDriver(ctx context.Context) error {
	return s.tc.Send("GET", "/drivers/"+s.driverID, nil)
}

func (s *recordsSteps) deleteDriver(ctx context.Context) error {
	return s.tc.Send("DELETE", "/drivers/"+s.driverID, nil)
}

func (s *recordsSteps) listNotices(ctx context.Context) error {
	return s.tc.Send("GET", "/notices/"+s.driverID, nil)
}

func (s *recordsSteps) issueNotice(ctx context.Context, noticeID string, carID int) error {
	body := map[string]any{
		"notice_id":             noticeID,
		"car_id":                carID,
		"violation_date_time":   "2026-03-01T14:30:00Z",
		"detachment":            "Midtown South",
		"violation_severity":    "Low",
		"notice_status":         "Active",
		"entry_date":            "2026-03-01",
		"expiry_date":           "2026-09-01",
		"violation_description": "Running a red light",
		"violation_zip":         map[string]any{"zip_code": "10018", "state": "NY", "city": "NYC", "district": "Manhattan"},
		"violation_address":     map[string]any{"street": "W 34th St"},
	}
	return s.tc.Send("POST", "/notices", body)
}

func (s *recordsSteps) deleteNotice(ctx context.Context, noticeID string) error {
	return s.tc.Send("DELETE", "/notices/"+noticeID, nil)
}
