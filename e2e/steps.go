package e2e

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Background steps
	ctx.Step(`^the screening service is running$`, tc.screeningServiceIsRunning)

	// Input construction steps
	ctx.Step(`^a tenant named "([^"]*)" "([^"]*)" born "([^"]*)"$`, tc.tenantNamedBorn)
	ctx.Step(`^the tenant's nationality is "([^"]*)" and location is "([^"]*)"$`, tc.tenantNationalityAndLocation)
	ctx.Step(`^the tenant's gender is "([^"]*)"$`, tc.tenantGender)
	ctx.Step(`^a "([^"]*)" block with a result identical to the tenant$`, tc.blockWithIdenticalResult)
	ctx.Step(`^a "([^"]*)" block with a result named "([^"]*)" "([^"]*)"$`, tc.blockWithNamedResult)
	ctx.Step(`^an empty pipeline$`, tc.emptyPipeline)

	// Request steps
	ctx.Step(`^I submit the evaluation request$`, tc.submitEvaluation)
	ctx.Step(`^I submit the evaluation request without a tenant$`, tc.submitEvaluationWithoutTenant)
	ctx.Step(`^I submit the evaluation request without pipeline data$`, tc.submitEvaluationWithoutPipeline)
	ctx.Step(`^I GET "([^"]*)"$`, tc.getPath)

	// Assertion steps
	ctx.Step(`^the response status should be (\d+)$`, tc.responseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.responseShouldContain)
	ctx.Step(`^the response should contain (\d+) evaluations?$`, tc.responseShouldContainEvaluations)
	ctx.Step(`^evaluation (\d+) should have tier "([^"]*)"$`, tc.evaluationShouldHaveTier)
	ctx.Step(`^the tier counts should show (\d+) "([^"]*)"$`, tc.tierCountsShouldShow)
}

func (tc *TestContext) screeningServiceIsRunning(ctx context.Context) error {
	if err := tc.GET("/health/ready", nil); err != nil {
		return err
	}
	if tc.LastResponse.StatusCode != 200 {
		return fmt.Errorf("screening service is not ready: status %d", tc.LastResponse.StatusCode)
	}
	return nil
}

func (tc *TestContext) tenantNamedBorn(ctx context.Context, firstName, lastName, dob string) error {
	tc.Tenant = map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
		"dob":        dob,
	}
	tc.Pipeline = []map[string]any{}
	return nil
}

func (tc *TestContext) tenantNationalityAndLocation(ctx context.Context, nationality, location string) error {
	if tc.Tenant == nil {
		return fmt.Errorf("no tenant defined yet")
	}
	tc.Tenant["nationality"] = nationality
	tc.Tenant["location"] = location
	return nil
}

func (tc *TestContext) tenantGender(ctx context.Context, gender string) error {
	if tc.Tenant == nil {
		return fmt.Errorf("no tenant defined yet")
	}
	tc.Tenant["gender"] = gender
	return nil
}

func (tc *TestContext) blockWithIdenticalResult(ctx context.Context, sourceType string) error {
	if tc.Tenant == nil {
		return fmt.Errorf("no tenant defined yet")
	}

	result := map[string]any{
		"id": fmt.Sprintf("e2e-%d", len(tc.Pipeline)+1),
	}
	for key, value := range tc.Tenant {
		result[key] = value
	}

	tc.Pipeline = append(tc.Pipeline, map[string]any{
		"type":    sourceType,
		"results": []map[string]any{result},
	})
	return nil
}

func (tc *TestContext) blockWithNamedResult(ctx context.Context, sourceType, firstName, lastName string) error {
	tc.Pipeline = append(tc.Pipeline, map[string]any{
		"type": sourceType,
		"results": []map[string]any{
			{
				"id":         fmt.Sprintf("e2e-%d", len(tc.Pipeline)+1),
				"first_name": firstName,
				"last_name":  lastName,
			},
		},
	})
	return nil
}

func (tc *TestContext) emptyPipeline(ctx context.Context) error {
	tc.Pipeline = []map[string]any{}
	return nil
}

func (tc *TestContext) submitEvaluation(ctx context.Context) error {
	return tc.POST("/evaluate", map[string]any{
		"tenant":        tc.Tenant,
		"pipeline_data": tc.Pipeline,
	})
}

func (tc *TestContext) submitEvaluationWithoutTenant(ctx context.Context) error {
	return tc.POST("/evaluate", map[string]any{
		"pipeline_data": tc.Pipeline,
	})
}

func (tc *TestContext) submitEvaluationWithoutPipeline(ctx context.Context) error {
	return tc.POST("/evaluate", map[string]any{
		"tenant": tc.Tenant,
	})
}

func (tc *TestContext) getPath(ctx context.Context, path string) error {
	return tc.GET(path, nil)
}

func (tc *TestContext) responseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	if tc.LastResponse.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d but got %d\nResponse: %s",
			expectedStatus, tc.LastResponse.StatusCode, string(tc.LastResponseBody))
	}
	return nil
}

func (tc *TestContext) responseShouldContain(ctx context.Context, field string) error {
	if !tc.ResponseContains(field) {
		return fmt.Errorf("response does not contain field: %s\nResponse: %s", field, string(tc.LastResponseBody))
	}
	return nil
}

func (tc *TestContext) responseShouldContainEvaluations(ctx context.Context, expectedCount int) error {
	evaluations, err := tc.Evaluations()
	if err != nil {
		return err
	}
	if len(evaluations) != expectedCount {
		return fmt.Errorf("expected %d evaluations but got %d", expectedCount, len(evaluations))
	}
	return nil
}

func (tc *TestContext) evaluationShouldHaveTier(ctx context.Context, index int, expectedTier string) error {
	evaluations, err := tc.Evaluations()
	if err != nil {
		return err
	}
	if index >= len(evaluations) {
		return fmt.Errorf("evaluation index %d out of range (%d evaluations)", index, len(evaluations))
	}

	tier, ok := evaluations[index]["relevance_tier"].(string)
	if !ok {
		return fmt.Errorf("evaluation %d has no relevance_tier", index)
	}
	if tier != expectedTier {
		return fmt.Errorf("evaluation %d: expected tier %q but got %q", index, expectedTier, tier)
	}
	return nil
}

func (tc *TestContext) tierCountsShouldShow(ctx context.Context, expectedCount int, tier string) error {
	raw, err := tc.GetResponseField("tier_counts")
	if err != nil {
		return err
	}

	counts, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("tier_counts is not an object: %T", raw)
	}

	// encoding/json decodes numbers as float64
	value, ok := counts[tier].(float64)
	if !ok {
		return fmt.Errorf("tier %q not found in tier_counts: %v", tier, counts)
	}
	if int(value) != expectedCount {
		return fmt.Errorf("tier %q: expected count %d but got %d", tier, expectedCount, int(value))
	}
	return nil
}
