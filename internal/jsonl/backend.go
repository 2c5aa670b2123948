package jsonl

import (
	"errors"
	"fmt"
	"os"

	gojson "github.com/goccy/go-json"

	"github.com/mesh-intelligence/insurapro/internal/crm"
	"github.com/mesh-intelligence/insurapro/pkg/types"
)

// Record type tags.
const (
	recordClient      = "client"
	recordInteraction = "interaction"
)

// record is the JSON shape of one line. Client lines fill the client
// fields; interaction lines fill IDCard, Kind and the payload of Kind.
type record struct {
	Record       string   `json:"record"`
	IDCard       string   `json:"id_card"`
	FirstName    string   `json:"first_name,omitempty"`
	LastName     string   `json:"last_name,omitempty"`
	Email        string   `json:"email,omitempty"`
	PolicyNumber int      `json:"policy_number,omitempty"`
	CompanyName  string   `json:"company_name,omitempty"`
	Kind         string   `json:"kind,omitempty"`
	Description  string   `json:"description,omitempty"`
	SalesPerson  string   `json:"sales_person,omitempty"`
	Date         string   `json:"date,omitempty"`
	Hour         string   `json:"hour,omitempty"`
	Value        *float64 `json:"value,omitempty"`
	Status       string   `json:"status,omitempty"`
}

// Backend stores snapshots in a JSON Lines file.
type Backend struct{}

// NewBackend returns a JSON Lines snapshot backend.
func NewBackend() *Backend {
	return &Backend{}
}

var _ crm.Backend = (*Backend)(nil)

// Save writes every client in store order, then every interaction grouped
// by identity card in entry order. Interactions of unknown cards are kept.
// Errors wrap types.ErrIO.
func (b *Backend) Save(path string, snap crm.Snapshot) error {
	var lines []gojson.RawMessage
	add := func(r record) error {
		data, err := gojson.Marshal(r)
		if err != nil {
			return fmt.Errorf("%w: encoding %s record: %v", types.ErrIO, r.Record, err)
		}
		lines = append(lines, data)
		return nil
	}

	for _, c := range snap.Clients {
		if err := add(clientRecord(c)); err != nil {
			return err
		}
	}
	if snap.Interactions != nil {
		for _, idCard := range snap.Interactions.Keys() {
			for _, in := range snap.Interactions.ListFor(idCard) {
				if err := add(interactionRecord(idCard, in)); err != nil {
					return err
				}
			}
		}
	}

	if err := writeJSONL(path, lines); err != nil {
		return fmt.Errorf("%w: %v", types.ErrIO, err)
	}
	return nil
}

func clientRecord(c types.Client) record {
	return record{
		Record:       recordClient,
		IDCard:       c.IDCard,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PolicyNumber: c.PolicyNumber,
		CompanyName:  c.CompanyName,
	}
}

func interactionRecord(idCard string, in types.Interaction) record {
	r := record{Record: recordInteraction, IDCard: idCard, Kind: string(in.Kind), Description: in.Description}
	switch in.Kind {
	case types.KindAppointment:
		r.SalesPerson = in.Appointment.SalesPerson
		r.Date = in.Appointment.Date
		r.Hour = in.Appointment.Hour
	case types.KindContract:
		value := in.Contract.Value
		r.Value = &value
		r.Status = in.Contract.Status
	}
	return r
}

// Load reads a file written by Save. A file that cannot be opened wraps
// types.ErrIO; a read failure after opening wraps types.ErrUnreadable.
// Malformed lines, unknown record tags and unknown interaction kinds are
// skipped with a warning.
func (b *Backend) Load(path string) (crm.Snapshot, []types.Warning, error) {
	if _, err := os.Stat(path); err != nil {
		return crm.Snapshot{}, nil, fmt.Errorf("%w: opening %s: %v", types.ErrIO, path, err)
	}
	lines, invalid, err := readJSONL(path)
	switch {
	case errors.Is(err, errRead):
		return crm.Snapshot{}, nil, fmt.Errorf("%w: %v", types.ErrUnreadable, err)
	case err != nil:
		return crm.Snapshot{}, nil, fmt.Errorf("%w: %v", types.ErrIO, err)
	}

	var warnings []types.Warning
	for _, n := range invalid {
		warnings = append(warnings, types.Warning{Line: n, Message: "skipping malformed JSON line"})
	}

	snap := crm.Snapshot{Clients: []types.Client{}, Interactions: crm.NewRegistry()}
	for _, l := range lines {
		var r record
		if err := gojson.Unmarshal(l.data, &r); err != nil {
			warnings = append(warnings, types.Warning{Line: l.line, Message: fmt.Sprintf("skipping line: %v", err)})
			continue
		}
		switch r.Record {
		case recordClient:
			snap.Clients = append(snap.Clients, types.Client{
				IDCard:       r.IDCard,
				FirstName:    r.FirstName,
				LastName:     r.LastName,
				Email:        r.Email,
				PolicyNumber: r.PolicyNumber,
				CompanyName:  r.CompanyName,
			})
		case recordInteraction:
			in, err := r.interaction()
			if err != nil {
				warnings = append(warnings, types.Warning{Line: l.line, Message: fmt.Sprintf("ignoring interaction: %v", err)})
				continue
			}
			snap.Interactions.Append(r.IDCard, in)
		default:
			warnings = append(warnings, types.Warning{Line: l.line, Message: fmt.Sprintf("skipping unknown record %q", r.Record)})
		}
	}
	return snap, warnings, nil
}

func (r record) interaction() (types.Interaction, error) {
	kind, err := types.ParseKind(r.Kind)
	if err != nil {
		return types.Interaction{}, err
	}
	switch kind {
	case types.KindContract:
		var value float64
		if r.Value != nil {
			value = *r.Value
		}
		return types.NewContract(r.Description, value, r.Status), nil
	default:
		return types.NewAppointment(r.Description, r.SalesPerson, r.Date, r.Hour), nil
	}
}
