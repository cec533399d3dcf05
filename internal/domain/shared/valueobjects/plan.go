package valueobjects

import "fmt"

// Plan represents a pricing tier shared by products and subscriptions.
type Plan string

const (
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

// AllPlans lists the tiers in ascending order of capability.
var AllPlans = []Plan{PlanStarter, PlanProfessional, PlanEnterprise}

func (p Plan) String() string {
	return string(p)
}

func (p Plan) IsValid() bool {
	return p == PlanStarter || p == PlanProfessional || p == PlanEnterprise
}

// IsPopular reports whether the tier is highlighted in pricing displays.
// The professional tier is conventionally the highlighted one.
func (p Plan) IsPopular() bool {
	return p == PlanProfessional
}

// DisplayName returns the tier name capitalized for display.
func (p Plan) DisplayName() string {
	switch p {
	case PlanStarter:
		return "Starter"
	case PlanProfessional:
		return "Professional"
	case PlanEnterprise:
		return "Enterprise"
	}
	return string(p)
}

// NewPlan creates a Plan from a string.
func NewPlan(value string) (Plan, error) {
	p := Plan(value)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid plan: %s, must be 'starter', 'professional', or 'enterprise'", value)
	}
	return p, nil
}
