package enums

import (
	"fmt"
	"strings"
)

// ProductStatus tracks the review state of a product listing.
type ProductStatus string

const (
	ProductStatusApproved  ProductStatus = "APPROVED"
	ProductStatusInTransit ProductStatus = "IN_TRANSIT"
	ProductStatusPending   ProductStatus = "PENDING"
	ProductStatusRejected  ProductStatus = "REJECTED"
)

var validProductStatuses = []ProductStatus{
	ProductStatusApproved,
	ProductStatusInTransit,
	ProductStatusPending,
	ProductStatusRejected,
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus. Matching ignores case.
func ParseProductStatus(value string) (ProductStatus, error) {
	normalized := ProductStatus(strings.ToUpper(strings.TrimSpace(value)))
	if normalized.IsValid() {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid product status %q", value)
}
