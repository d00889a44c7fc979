package valueobjects

import "fmt"

// PlanID identifies a catalog tier.
type PlanID string

const (
	PlanBasic        PlanID = "basic"
	PlanProfessional PlanID = "professional"
	PlanEnterprise   PlanID = "enterprise"
)

var validPlanIDs = map[PlanID]bool{
	PlanBasic:        true,
	PlanProfessional: true,
	PlanEnterprise:   true,
}

func (p PlanID) String() string {
	return string(p)
}

func (p PlanID) IsValid() bool {
	return validPlanIDs[p]
}

// ParsePlanID validates a raw plan identifier.
func ParsePlanID(raw string) (PlanID, error) {
	p := PlanID(raw)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown plan: %q", raw)
	}
	return p, nil
}
