package valueobjects

import (
	"fmt"
	"strings"
)

// ResourceType names a plan-limited resource a supplier consumes.
type ResourceType string

const (
	ResourceProducts    ResourceType = "products"
	ResourceQuotes      ResourceType = "quotes"
	ResourceSpecialties ResourceType = "specialties"
	ResourcePhotos      ResourceType = "photos"
)

// AllResourceTypes lists every limited resource in catalog order.
var AllResourceTypes = []ResourceType{
	ResourceProducts,
	ResourceQuotes,
	ResourceSpecialties,
	ResourcePhotos,
}

var validResourceTypes = map[ResourceType]bool{
	ResourceProducts:    true,
	ResourceQuotes:      true,
	ResourceSpecialties: true,
	ResourcePhotos:      true,
}

func (r ResourceType) String() string {
	return string(r)
}

func (r ResourceType) IsValid() bool {
	return validResourceTypes[r]
}

// ParseResourceType validates a raw resource type value.
func ParseResourceType(raw string) (ResourceType, error) {
	r := ResourceType(strings.ToLower(strings.TrimSpace(raw)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid resource type: %q", raw)
	}
	return r, nil
}
