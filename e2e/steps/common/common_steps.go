package common

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	SendAnonymous(method, path string, body any) error
	Status() int
	GetResponseField(field string) (any, error)
	ResponseArrayLen() (int, error)
}

// RegisterSteps registers generic request and assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the service is running$`, steps.serviceIsRunning)
	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, steps.responseShouldContain)
	ctx.Step(`^the response should be a list of (\d+) items?$`, steps.listOf)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) serviceIsRunning(ctx context.Context) error {
	if err := s.tc.SendAnonymous("GET", "/", nil); err != nil {
		return err
	}
	return s.statusShouldBe(ctx, 200)
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	return s.tc.SendAnonymous("GET", path, nil)
}

func (s *commonSteps) statusShouldBe(ctx context.Context, status int) error {
	if s.tc.Status() != status {
		return fmt.Errorf("expected status %d, got %d", status, s.tc.Status())
	}
	return nil
}

func (s *commonSteps) fieldShouldBe(ctx context.Context, field, want string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(v); got != want {
		return fmt.Errorf("expected %s=%q, got %q", field, want, got)
	}
	return nil
}

func (s *commonSteps) responseShouldContain(ctx context.Context, field string) error {
	_, err := s.tc.GetResponseField(field)
	return err
}

func (s *commonSteps) listOf(ctx context.Context, n int) error {
	got, err := s.tc.ResponseArrayLen()
	if err != nil {
		return err
	}
	if got != n {
		return fmt.Errorf("expected %d items, got %d", n, got)
	}
	return nil
}
