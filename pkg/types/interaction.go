package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the interaction variants. The string value is the
// tag written to the Interaction_Type column.
type Kind string

// Interaction kinds.
const (
	KindAppointment Kind = "Appointment"
	KindContract    Kind = "Contract"
)

// ParseKind returns the Kind named by s. Matching is exact, as written by
// the tabular codec. Returns ErrUnknownKind otherwise.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindAppointment, KindContract:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Appointment is the payload of a KindAppointment interaction.
type Appointment struct {
	SalesPerson string
	Date        string // Free text, expected YYYY-MM-DD.
	Hour        string // Free text, expected HH:MM.
}

// Contract is the payload of a KindContract interaction.
type Contract struct {
	Value  float64 // Non-negative; displayed with two decimals.
	Status string
}

// Interaction is a single entry in a client's contact history. Only the
// payload matching Kind is meaningful; the other is the zero value.
type Interaction struct {
	Kind        Kind
	Description string
	Appointment Appointment
	Contract    Contract
}

// NewAppointment builds a KindAppointment interaction.
func NewAppointment(description, salesPerson, date, hour string) Interaction {
	return Interaction{
		Kind:        KindAppointment,
		Description: description,
		Appointment: Appointment{SalesPerson: salesPerson, Date: date, Hour: hour},
	}
}

// NewContract builds a KindContract interaction.
func NewContract(description string, value float64, status string) Interaction {
	return Interaction{
		Kind:        KindContract,
		Description: description,
		Contract:    Contract{Value: value, Status: status},
	}
}

// Render returns the one-line human-readable summary of the interaction.
func (i Interaction) Render() string {
	switch i.Kind {
	case KindAppointment:
		return fmt.Sprintf("Appointment - %s (Sales: %s, Date: %s, Hour: %s)",
			i.Description, i.Appointment.SalesPerson, i.Appointment.Date, i.Appointment.Hour)
	case KindContract:
		return fmt.Sprintf("Contract - %s (Value: $%s, Status: %s)",
			i.Description, FormatValue(i.Contract.Value), i.Contract.Status)
	default:
		return fmt.Sprintf("%s - %s", i.Kind, i.Description)
	}
}

// String implements fmt.Stringer.
func (i Interaction) String() string {
	return i.Render()
}

// FormatValue formats a contract value with two decimals.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ParseContractValue parses a contract value. Surrounding whitespace is
// ignored. Returns ErrInvalidFormat for non-numeric, negative, NaN or
// infinite input.
func ParseContractValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: contract value %q", ErrInvalidFormat, s)
	}
	return v, nil
}
