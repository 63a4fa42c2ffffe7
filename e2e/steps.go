package e2e

import (
	"context"

	"github.com/cucumber/godog"

	"noticebase/e2e/steps/auth"
	"noticebase/e2e/steps/common"
	"noticebase/e2e/steps/records"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	common.RegisterSteps(ctx, tc)
	auth.RegisterSteps(ctx, tc)
	records.RegisterSteps(ctx, tc)
}
