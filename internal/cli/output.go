package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	gojson "github.com/goccy/go-json"

	"github.com/mesh-intelligence/insurapro/pkg/types"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	bannerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func heading(w io.Writer, title string) {
	fmt.Fprintln(w, headingStyle.Render("=== "+title+" ==="))
}

// clientView is the JSON shape of a listed client.
type clientView struct {
	Number       int    `json:"number"`
	IDCard       string `json:"id_card"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PolicyNumber int    `json:"policy_number"`
	CompanyName  string `json:"company_name"`
}

// interactionView is the JSON shape of a listed interaction.
type interactionView struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	SalesPerson string   `json:"sales_person,omitempty"`
	Date        string   `json:"date,omitempty"`
	Hour        string   `json:"hour,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Status      string   `json:"status,omitempty"`
	Summary     string   `json:"summary"`
}

func newClientView(index int, c types.Client) clientView {
	return clientView{
		Number:       index + 1,
		IDCard:       c.IDCard,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PolicyNumber: c.PolicyNumber,
		CompanyName:  c.CompanyName,
	}
}

func newInteractionView(in types.Interaction) interactionView {
	v := interactionView{Type: string(in.Kind), Description: in.Description, Summary: in.Render()}
	switch in.Kind {
	case types.KindAppointment:
		v.SalesPerson = in.Appointment.SalesPerson
		v.Date = in.Appointment.Date
		v.Hour = in.Appointment.Hour
	case types.KindContract:
		value := in.Contract.Value
		v.Value = &value
		v.Status = in.Contract.Status
	}
	return v
}

func writeJSON(w io.Writer, v any) error {
	data, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printClients lists clients by 1-based number. indices selects which
// clients to print; nil prints all.
func printClients(w io.Writer, title string, clients []types.Client, indices []int) error {
	if indices == nil {
		indices = make([]int, len(clients))
		for i := range clients {
			indices[i] = i
		}
	}

	if flags.jsonMode {
		views := make([]clientView, 0, len(indices))
		for _, i := range indices {
			views = append(views, newClientView(i, clients[i]))
		}
		return writeJSON(w, views)
	}

	if len(indices) == 0 {
		fmt.Fprintln(w, "No clients found.")
		return nil
	}
	heading(w, title)
	for _, i := range indices {
		c := clients[i]
		fmt.Fprintf(w, "[%d] ID: %s | Name: %s | Email: %s | Policy: %d | Company: %s\n",
			i+1, c.IDCard, c.FullName(), c.Email, c.PolicyNumber, c.CompanyName)
	}
	return nil
}

// printInteractions lists a client's interactions in entry order.
func printInteractions(w io.Writer, history []types.Interaction) error {
	if flags.jsonMode {
		views := make([]interactionView, 0, len(history))
		for _, in := range history {
			views = append(views, newInteractionView(in))
		}
		return writeJSON(w, views)
	}

	if len(history) == 0 {
		fmt.Fprintln(w, "No interactions found for this client.")
		return nil
	}
	heading(w, "INTERACTIONS")
	for i, in := range history {
		fmt.Fprintf(w, "[%d] %s\n", i+1, in.Render())
	}
	return nil
}
