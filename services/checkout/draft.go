package checkout

import (
	"net/mail"
	"strings"

	"deskhive/models"
)

// BuildDraft converts a completed selection plus the contact form into a
// normalized order-creation request. It never panics: every malformed input
// maps to a deterministic ValidationError.
func BuildDraft(location *models.Location, service *models.ServiceOffering, customer models.CustomerDetails) (*models.OrderDraft, error) {
	if location == nil {
		return nil, NewValidationError(ReasonMissingLocation)
	}
	if service == nil {
		return nil, NewValidationError(ReasonMissingService)
	}
	if field := validateCustomer(customer); field != "" {
		return nil, &ValidationError{Reason: ReasonInvalidCustomer, Field: field}
	}
	// Guard against a corrupt catalog entry; not expected in normal operation.
	if _, err := ToMinorUnits(service.Price); err != nil {
		return nil, NewValidationError(ReasonMalformedPrice)
	}

	return &models.OrderDraft{
		LocationID:        location.ID,
		ServiceOfferingID: service.ID,
		Customer:          customer,
		Amount:            service.Price,
		Currency:          service.Currency,
	}, nil
}

// validateCustomer returns the name of the first invalid field, or "".
// Company is optional.
func validateCustomer(c models.CustomerDetails) string {
	if len(strings.TrimSpace(c.Name)) < 2 {
		return "name"
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return "email"
	}
	if len(digitsOf(c.Phone)) < 10 {
		return "phone"
	}
	return ""
}

// digitsOf strips formatting characters so "+91 98765-43210" still counts as
// a 12-digit number.
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
