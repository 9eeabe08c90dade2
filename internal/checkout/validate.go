package checkout

import (
	"fmt"
	"regexp"
	"strings"
)

// Reason is the machine-readable cause of a stage validation failure,
// specific enough for the caller to render the right message.
type Reason string

const (
	ReasonMissingField      Reason = "MissingField"
	ReasonInvalidEmail      Reason = "InvalidEmail"
	ReasonMissingAddress    Reason = "MissingAddress"
	ReasonMissingCardField  Reason = "MissingCardField"
	ReasonInvalidCardNumber Reason = "InvalidCardNumber"
	ReasonInvalidCVV        Reason = "InvalidCVV"
	ReasonTermsNotAccepted  Reason = "TermsNotAccepted"
)

// ValidationError reports why a stage failed. It is recoverable: the
// state is left exactly as it was before the attempt.
type ValidationError struct {
	Stage  Stage  `json:"stage"`
	Reason Reason `json:"reason"`
	Field  string `json:"field,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("stage %d: %s (%s)", e.Stage, e.Reason, e.Field)
	}
	return fmt.Sprintf("stage %d: %s", e.Stage, e.Reason)
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// validate runs the validator for the given stage against the state.
func (s *State) validate(stage Stage) *ValidationError {
	switch stage {
	case StageCustomer:
		return s.validateCustomer()
	case StageShipping:
		return s.validateShipping()
	case StagePayment:
		return s.validatePayment()
	case StageReview:
		return s.validateReview()
	}
	return nil
}

func (s *State) validateCustomer() *ValidationError {
	fields := []struct {
		name  string
		value string
	}{
		{"firstName", s.Customer.FirstName},
		{"lastName", s.Customer.LastName},
		{"email", s.Customer.Email},
		{"phone", s.Customer.Phone},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Stage: StageCustomer, Reason: ReasonMissingField, Field: f.name}
		}
	}
	if !emailPattern.MatchString(strings.TrimSpace(s.Customer.Email)) {
		return &ValidationError{Stage: StageCustomer, Reason: ReasonInvalidEmail, Field: "email"}
	}
	return nil
}

func (s *State) validateShipping() *ValidationError {
	if s.SavedAddressID != "" {
		return nil
	}
	a := s.ShippingAddress
	if strings.TrimSpace(a.Address1) == "" || strings.TrimSpace(a.City) == "" ||
		strings.TrimSpace(a.State) == "" || strings.TrimSpace(a.Zip) == "" {
		return &ValidationError{Stage: StageShipping, Reason: ReasonMissingAddress}
	}
	return nil
}

func (s *State) validatePayment() *ValidationError {
	if s.Payment.Method != PaymentCard {
		return nil
	}

	card := s.Payment.Card
	number := strings.ReplaceAll(card.Number, " ", "")
	if number == "" || strings.TrimSpace(card.Name) == "" ||
		strings.TrimSpace(card.Expiry) == "" || strings.TrimSpace(card.CVV) == "" {
		return &ValidationError{Stage: StagePayment, Reason: ReasonMissingCardField}
	}
	if len(number) < 13 || len(number) > 19 || !digitsOnly.MatchString(number) {
		return &ValidationError{Stage: StagePayment, Reason: ReasonInvalidCardNumber, Field: "number"}
	}
	cvv := strings.TrimSpace(card.CVV)
	if len(cvv) < 3 || len(cvv) > 4 || !digitsOnly.MatchString(cvv) {
		return &ValidationError{Stage: StagePayment, Reason: ReasonInvalidCVV, Field: "cvv"}
	}
	return nil
}

func (s *State) validateReview() *ValidationError {
	if !s.AgreeTerms {
		return &ValidationError{Stage: StageReview, Reason: ReasonTermsNotAccepted}
	}
	return nil
}
