package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurapro/pkg/types"
)

func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive menu",
		Long: `Menu loads the data file and offers a numbered menu to add, view, edit,
delete and search clients, manage their interactions, and save or reload
the data file. Choosing Exit, or closing standard input, saves first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			m := &menu{s: s, in: bufio.NewScanner(cmd.InOrStdin()), out: s.out}
			return m.run()
		},
	}
}

// menu drives the interactive loop over one session.
type menu struct {
	s   *session
	in  *bufio.Scanner
	out io.Writer
}

const menuText = `1. Add Client
2. View All Clients
3. Edit Client
4. Delete Client
5. Search Client
6. Manage Interactions
7. Save Data
8. Load Data
9. Exit`

// prompt prints label and reads one line. ok is false at end of input.
func (m *menu) prompt(label string) (line string, ok bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		fmt.Fprintln(m.out)
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// promptNumber reads an integer; ok is false on end of input or when the
// line is not a number, after telling the user.
func (m *menu) promptNumber(label string) (int, bool) {
	line, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid number.")
		return 0, false
	}
	return n, true
}

func (m *menu) run() error {
	fmt.Fprintln(m.out, bannerStyle.Render("InsuraPro CRM"))
	for {
		fmt.Fprintln(m.out)
		heading(m.out, "CRM SYSTEM")
		fmt.Fprintln(m.out, menuText)
		choice, ok := m.prompt("Choose option: ")
		if !ok {
			choice = "9"
		}

		var err error
		switch choice {
		case "1":
			m.addClient()
		case "2":
			err = printClients(m.out, "ALL CLIENTS", m.s.manager.Store().List(), nil)
		case "3":
			m.editClient()
		case "4":
			m.deleteClient()
		case "5":
			m.searchClients()
		case "6":
			m.manageInteractions()
		case "7":
			m.save()
		case "8":
			switch lerr := m.s.load(); {
			case lerr == nil:
				fmt.Fprintf(m.out, "Data loaded from %s successfully! (%d clients)\n", m.s.cfg.DataFile, m.s.manager.Store().Len())
			case errors.Is(lerr, types.ErrUnreadable):
				err = fmt.Errorf("reload: %w", lerr)
			default:
				fmt.Fprintf(m.out, "Error: %v\n", lerr)
			}
		case "9":
			if !m.save() {
				return fmt.Errorf("save on exit: %w", types.ErrIO)
			}
			fmt.Fprintln(m.out, "Shutting down!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

func (m *menu) save() bool {
	if err := m.s.save(); err != nil {
		fmt.Fprintf(m.out, "Error: %v\n", err)
		return false
	}
	fmt.Fprintf(m.out, "Data saved to %s successfully!\n", m.s.cfg.DataFile)
	return true
}

func (m *menu) addClient() {
	heading(m.out, "ADD CLIENT")
	var c types.Client
	fields := []struct {
		label string
		dst   *string
	}{
		{"Enter ID Card: ", &c.IDCard},
		{"Enter First Name: ", &c.FirstName},
		{"Enter Last Name: ", &c.LastName},
		{"Enter Email: ", &c.Email},
	}
	for _, f := range fields {
		v, ok := m.prompt(f.label)
		if !ok {
			return
		}
		*f.dst = v
	}

	policy, ok := m.prompt("Enter Policy Number: ")
	if !ok {
		return
	}
	n, err := types.ParsePolicyNumber(policy)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid policy number.")
		return
	}
	c.PolicyNumber = n

	if c.CompanyName, ok = m.prompt("Enter Company Name: "); !ok {
		return
	}
	m.s.manager.AddClient(c)
	fmt.Fprintln(m.out, "Client added successfully!")
}

// pickFromSearch searches by name and returns the chosen store index.
func (m *menu) pickFromSearch(label string) (int, bool) {
	term, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	results := m.s.manager.Store().Search(term)
	switch len(results) {
	case 0:
		fmt.Fprintln(m.out, "No clients found with that name.")
		return 0, false
	case 1:
		return results[0], true
	}

	fmt.Fprintln(m.out, "\nMultiple clients found:")
	clients := m.s.manager.Store().List()
	for i, idx := range results {
		fmt.Fprintf(m.out, "[%d] Name: %s | Email: %s\n", i+1, clients[idx].FullName(), clients[idx].Email)
	}
	choice, ok := m.promptNumber("\nEnter the number of the client to edit: ")
	if !ok {
		return 0, false
	}
	if choice < 1 || choice > len(results) {
		fmt.Fprintln(m.out, "Invalid choice.")
		return 0, false
	}
	return results[choice-1], true
}

func (m *menu) editClient() {
	if m.s.manager.Store().Len() == 0 {
		fmt.Fprintln(m.out, "No clients found.")
		return
	}
	idx, ok := m.pickFromSearch("\nEnter client's first or last name to search: ")
	if !ok {
		return
	}
	c, err := m.s.manager.Store().At(idx)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid client index.")
		return
	}

	fmt.Fprintf(m.out, "\nEditing client: %s\n", c.FullName())
	fmt.Fprintln(m.out, "1. Edit ID Card\n2. Edit First Name\n3. Edit Last Name")
	fmt.Fprintln(m.out, "4. Edit Email\n5. Edit Policy Number\n6. Edit Company Name")
	sel, ok := m.prompt("Choose field to edit: ")
	if !ok {
		return
	}
	field, err := types.ParseField(sel)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid choice.")
		return
	}
	value, ok := m.prompt("Enter new value: ")
	if !ok {
		return
	}

	_, err = m.s.manager.EditClient(idx, field, value)
	switch {
	case errors.Is(err, types.ErrInvalidFormat):
		fmt.Fprintln(m.out, "Invalid number, client not changed.")
	case err != nil:
		fmt.Fprintf(m.out, "Error: %v\n", err)
	default:
		fmt.Fprintln(m.out, "Client updated successfully!")
	}
}

func (m *menu) deleteClient() {
	clients := m.s.manager.Store().List()
	_ = printClients(m.out, "ALL CLIENTS", clients, nil)
	if len(clients) == 0 {
		return
	}
	n, ok := m.promptNumber("\nEnter client number to delete: ")
	if !ok {
		return
	}
	confirm, ok := m.prompt("Are you sure? (y/n): ")
	if !ok || !strings.EqualFold(confirm, "y") {
		return
	}
	if _, err := m.s.manager.RemoveClient(n - 1); err != nil {
		fmt.Fprintln(m.out, "Invalid client index.")
		return
	}
	fmt.Fprintln(m.out, "Client deleted successfully!")
}

func (m *menu) searchClients() {
	term, ok := m.prompt("\nEnter search term (first/last name): ")
	if !ok {
		return
	}
	store := m.s.manager.Store()
	results := store.Search(term)
	if len(results) == 0 {
		fmt.Fprintln(m.out, "No clients found.")
		return
	}
	heading(m.out, "SEARCH RESULTS")
	clients := store.List()
	for _, idx := range results {
		fmt.Fprintf(m.out, "[%d] Name: %s | Email: %s\n", idx+1, clients[idx].FullName(), clients[idx].Email)
	}
}

func (m *menu) manageInteractions() {
	clients := m.s.manager.Store().List()
	_ = printClients(m.out, "ALL CLIENTS", clients, nil)
	if len(clients) == 0 {
		return
	}
	n, ok := m.promptNumber("\nEnter client number: ")
	if !ok {
		return
	}
	if n < 1 || n > len(clients) {
		fmt.Fprintln(m.out, "Invalid client number.")
		return
	}
	idCard := clients[n-1].IDCard

	fmt.Fprintln(m.out, "\n1. Add Appointment\n2. Add Contract\n3. View Interactions")
	choice, ok := m.prompt("Choose: ")
	if !ok {
		return
	}
	switch choice {
	case "1":
		var desc, sales, date, hour string
		for _, p := range []struct {
			label string
			dst   *string
		}{
			{"Enter appointment description: ", &desc},
			{"Enter salesperson name: ", &sales},
			{"Enter appointment date (YYYY-MM-DD): ", &date},
			{"Enter appointment hour (HH:MM): ", &hour},
		} {
			if *p.dst, ok = m.prompt(p.label); !ok {
				return
			}
		}
		m.s.manager.AddInteraction(idCard, types.NewAppointment(desc, sales, date, hour))
		fmt.Fprintln(m.out, "Appointment added!")
	case "2":
		desc, ok := m.prompt("Enter contract description: ")
		if !ok {
			return
		}
		raw, ok := m.prompt("Enter contract value: ")
		if !ok {
			return
		}
		value, err := types.ParseContractValue(raw)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid contract value.")
			return
		}
		status, ok := m.prompt("Enter contract status: ")
		if !ok {
			return
		}
		m.s.manager.AddInteraction(idCard, types.NewContract(desc, value, status))
		fmt.Fprintln(m.out, "Contract added!")
	case "3":
		_ = printInteractions(m.out, m.s.manager.Registry().ListFor(idCard))
	default:
		fmt.Fprintln(m.out, "Invalid choice.")
	}
}
