package checkout

import (
	"regexp"
	"strings"
)

// Shipping holds the step-one form fields.
type Shipping struct {
	FirstName string
	LastName  string
	Email     string
	Address   string
	City      string
	Zip       string
}

// Payment holds the step-two form fields. Values are validated by
// structural pattern only; nothing is ever sent to a payment processor.
type Payment struct {
	CardNumber string
	Expiry     string
	CVV        string
	NameOnCard string
}

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipPattern    = regexp.MustCompile(`^\d{1,5}$`)
	cardPattern   = regexp.MustCompile(`^\d{4} \d{4} \d{4} \d{4}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

// Validate returns one message per invalid field, empty when the step
// may advance.
func (s Shipping) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(s.FirstName) == "" {
		errs["firstName"] = "first name is required"
	}
	if strings.TrimSpace(s.LastName) == "" {
		errs["lastName"] = "last name is required"
	}
	if !emailPattern.MatchString(s.Email) {
		errs["email"] = "enter a valid email address"
	}
	if strings.TrimSpace(s.Address) == "" {
		errs["address"] = "address is required"
	}
	if strings.TrimSpace(s.City) == "" || strings.ContainsAny(s.City, "0123456789") {
		errs["city"] = "enter a city name without digits"
	}
	if !zipPattern.MatchString(s.Zip) {
		errs["zip"] = "enter a numeric ZIP code"
	}
	return errs
}

func (p Payment) Validate() map[string]string {
	errs := make(map[string]string)
	if len(strings.TrimSpace(p.NameOnCard)) < 2 {
		errs["nameOnCard"] = "enter the cardholder's full name"
	}
	if !cardPattern.MatchString(p.CardNumber) {
		errs["cardNumber"] = "enter a 16-digit card number"
	}
	if !expiryPattern.MatchString(p.Expiry) {
		errs["expiry"] = "enter a valid expiry date as MM/YY"
	}
	if !cvvPattern.MatchString(p.CVV) {
		errs["cvv"] = "enter the 3 or 4 digit security code"
	}
	return errs
}
