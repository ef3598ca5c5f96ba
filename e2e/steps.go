package e2e

import (
	"github.com/cucumber/godog"

	"njgeo/e2e/steps/common"
	"njgeo/e2e/steps/geo"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and envelope assertions
	common.RegisterSteps(ctx, tc)

	// County and municipality lookups
	geo.RegisterSteps(ctx, tc)
}
