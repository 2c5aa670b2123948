package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurapro/pkg/types"
)

func newClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Add, list, edit, delete and search clients",
	}
	cmd.AddCommand(newClientAddCmd())
	cmd.AddCommand(newClientListCmd())
	cmd.AddCommand(newClientEditCmd())
	cmd.AddCommand(newClientDeleteCmd())
	cmd.AddCommand(newClientSearchCmd())
	return cmd
}

func newClientAddCmd() *cobra.Command {
	var c types.Client
	var policy string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		Long: `Add appends a client to the data file.

Identity cards are not checked for uniqueness. When two clients share an
identity card, only the first survives a save and reload.

Example:
  insurapro client add --id C1 --first Ann --last Lee --email a@x.com --policy 100 --company Acme`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := types.ParsePolicyNumber(policy)
			if err != nil {
				return err
			}
			c.PolicyNumber = n

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if s.manager.Store().IndexOf(c.IDCard) >= 0 {
				s.log.Warn().Str("id_card", c.IDCard).Msg("identity card already in use")
			}
			s.manager.AddClient(c)
			if err := s.save(); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Client added successfully! (number %d)\n", s.manager.Store().Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&c.IDCard, "id", "", "identity card (required)")
	cmd.Flags().StringVar(&c.FirstName, "first", "", "first name")
	cmd.Flags().StringVar(&c.LastName, "last", "", "last name")
	cmd.Flags().StringVar(&c.Email, "email", "", "email address")
	cmd.Flags().StringVar(&policy, "policy", "0", "policy number")
	cmd.Flags().StringVar(&c.CompanyName, "company", "", "company name")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newClientListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			return printClients(s.out, "ALL CLIENTS", s.manager.Store().List(), nil)
		},
	}
}

func newClientEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <number> <field> <value>",
		Short: "Change one field of a client",
		Long: `Edit sets a single field of the client with the given number.

Fields: id_card, first_name, last_name, email, policy_number, company_name
(or 1-6). Changing the identity card moves the client's interactions with it.

Example:
  insurapro client edit 2 email ann@example.com
  insurapro client edit 2 5 4711`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := types.ParseField(args[1])
			if err != nil {
				return err
			}
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			idx, err := parseClientNumber(args[0], s.manager.Store().Len())
			if err != nil {
				return err
			}
			updated, err := s.manager.EditClient(idx, field, args[2])
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Client updated successfully! (%s %s)\n", updated.IDCard, updated.FullName())
			return nil
		},
	}
}

func newClientDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete a client and its interactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			idx, err := parseClientNumber(args[0], s.manager.Store().Len())
			if err != nil {
				return err
			}
			removed, err := s.manager.RemoveClient(idx)
			if err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Client deleted successfully! (%s %s)\n", removed.IDCard, removed.FullName())
			return nil
		},
	}
}

func newClientSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [term]",
		Short: "Find clients by first or last name",
		Long: `Search lists clients whose first or last name contains term, ignoring
case. Numbers are the same as in "client list". An empty term lists everyone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			return printClients(s.out, "SEARCH RESULTS", s.manager.Store().List(), s.manager.Store().Search(term))
		},
	}
}
