package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Client field names accepted by SetField and ParseField.
const (
	FieldIDCard       = "id_card"
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldEmail        = "email"
	FieldPolicyNumber = "policy_number"
	FieldCompanyName  = "company_name"
)

// ClientFields lists the editable fields in menu order. The menu numbers
// 1 through 6 map onto this slice.
var ClientFields = []string{
	FieldIDCard,
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPolicyNumber,
	FieldCompanyName,
}

// Client is a customer record. IDCard is the key used to address the
// client's interaction history; uniqueness is not enforced on insert.
type Client struct {
	IDCard       string // Identity card, the lookup key for interactions.
	FirstName    string
	LastName     string
	Email        string // Stored as entered; no format check.
	PolicyNumber int
	CompanyName  string // Optional; empty when the client has no company.
}

// FullName returns "First Last".
func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// SetField replaces the value of a single field. The policy number must
// parse as an integer; on ErrInvalidFormat the client is left unchanged.
// Returns ErrInvalidField if field is not one of the Field constants.
func (c *Client) SetField(field, value string) error {
	switch field {
	case FieldIDCard:
		c.IDCard = value
	case FieldFirstName:
		c.FirstName = value
	case FieldLastName:
		c.LastName = value
	case FieldEmail:
		c.Email = value
	case FieldPolicyNumber:
		n, err := ParsePolicyNumber(value)
		if err != nil {
			return err
		}
		c.PolicyNumber = n
	case FieldCompanyName:
		c.CompanyName = value
	default:
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return nil
}

// ParseField normalizes a field selector. It accepts the Field constants,
// case-insensitively, and the menu numbers "1" to "6".
func ParseField(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(ClientFields) {
			return "", fmt.Errorf("%w: %q", ErrInvalidField, s)
		}
		return ClientFields[n-1], nil
	}
	for _, f := range ClientFields {
		if f == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidField, s)
}

// ParsePolicyNumber parses a policy number. Surrounding whitespace is
// ignored. Returns ErrInvalidFormat for anything that is not an integer.
func ParsePolicyNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: policy number %q", ErrInvalidFormat, s)
	}
	return n, nil
}
