package auth

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Send(method, path string, body any) error
	SendAnonymous(method, path string, body any) error
	Status() int
	GetResponseField(field string) (any, error)
	GetAccessToken() string
	SetAccessToken(token string)
}

// RegisterSteps registers authentication-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.logIn)
	ctx.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, steps.loggedIn)
	ctx.Step(`^I refresh my token$`, steps.refresh)
	ctx.Step(`^I log out$`, steps.logOut)
	ctx.Step(`^I use the token "([^"]*)"$`, steps.useToken)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) logIn(ctx context.Context, username, password string) error {
	body := map[string]any{
		"username": username,
		"password": password,
	}
	if err := s.tc.SendAnonymous("POST", "/login", body); err != nil {
		return err
	}
	if s.tc.Status() == 200 {
		return s.saveToken()
	}
	return nil
}

func (s *authSteps) loggedIn(ctx context.Context, username, password string) error {
	if err := s.logIn(ctx, username, password); err != nil {
		return err
	}
	if s.tc.GetAccessToken() == "" {
		return fmt.Errorf("login as %q failed with status %d", username, s.tc.Status())
	}
	return nil
}

// refresh keeps the old token so scenarios can check it still works.
func (s *authSteps) refresh(ctx context.Context) error {
	return s.tc.Send("PUT", "/login", nil)
}

func (s *authSteps) logOut(ctx context.Context) error {
	return s.tc.Send("DELETE", "/login", nil)
}

func (s *authSteps) useToken(ctx context.Context, token string) error {
	s.tc.SetAccessToken(token)
	return nil
}

func (s *authSteps) saveToken() error {
	token, err := s.tc.GetResponseField("access_token")
	if err != nil {
		return err
	}
	str, ok := token.(string)
	if !ok || str == "" {
		return fmt.Errorf("access_token missing from login response")
	}
	s.tc.SetAccessToken(str)
	return nil
}
