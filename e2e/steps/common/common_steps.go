package common

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers generic request and response assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the service is running$`, steps.serviceIsRunning)
	ctx.Step(`^I GET "([^"]*)"$`, steps.get)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, steps.fieldShouldEqual)
	ctx.Step(`^the response field "([^"]*)" should equal (\d+)$`, steps.fieldShouldEqualNumber)
	ctx.Step(`^the response should not contain "([^"]*)"$`, steps.fieldShouldBeAbsent)
	ctx.Step(`^the error should be "([^"]*)"$`, steps.errorShouldBe)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) serviceIsRunning(ctx context.Context) error {
	if err := s.tc.GET("/healthz", nil); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("healthz returned %d: %s", status, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	return s.tc.GET(path, nil)
}

func (s *commonSteps) statusShouldBe(ctx context.Context, want int) error {
	if got := s.tc.GetLastResponseStatus(); got != want {
		return fmt.Errorf("expected status %d, got %d: %s", want, got, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) fieldShouldEqual(ctx context.Context, field, want string) error {
	got, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if fmt.Sprint(got) != want {
		return fmt.Errorf("expected %s=%q, got %v", field, want, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldEqualNumber(ctx context.Context, field string, want int) error {
	got, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	n, ok := got.(float64)
	if !ok || int(n) != want {
		return fmt.Errorf("expected %s=%d, got %v", field, want, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeAbsent(ctx context.Context, field string) error {
	if got, err := s.tc.GetResponseField(field); err == nil {
		return fmt.Errorf("expected %s to be absent, got %v", field, got)
	}
	return nil
}

func (s *commonSteps) errorShouldBe(ctx context.Context, code string) error {
	return s.fieldShouldEqual(ctx, "error", code)
}
