package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurapro/pkg/types"
)

func newInteractionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interaction",
		Aliases: []string{"interactions"},
		Short:   "Record and view appointments and contracts",
	}
	cmd.AddCommand(newAppointmentCmd())
	cmd.AddCommand(newContractCmd())
	cmd.AddCommand(newInteractionListCmd())
	return cmd
}

// addInteraction loads the data file, appends in to the client numbered
// arg and saves.
func addInteraction(cmd *cobra.Command, arg string, in types.Interaction) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	idx, err := parseClientNumber(arg, s.manager.Store().Len())
	if err != nil {
		return err
	}
	c, err := s.manager.AddInteractionAt(idx, in)
	if err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s added for %s!\n", in.Kind, c.FullName())
	return nil
}

func newAppointmentCmd() *cobra.Command {
	var description, salesPerson, date, hour string
	cmd := &cobra.Command{
		Use:     "appointment <number>",
		Short:   "Record an appointment for a client",
		Example: `  insurapro interaction appointment 1 --description Checkup --sales Bob --date 2024-01-01 --hour 10:00`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return addInteraction(cmd, args[0], types.NewAppointment(description, salesPerson, date, hour))
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "what the appointment is about")
	cmd.Flags().StringVar(&salesPerson, "sales", "", "salesperson name")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&hour, "hour", "", "hour (HH:MM)")
	return cmd
}

func newContractCmd() *cobra.Command {
	var description, value, status string
	cmd := &cobra.Command{
		Use:     "contract <number>",
		Short:   "Record a contract for a client",
		Example: `  insurapro interaction contract 1 --description "Home policy" --value 1200.50 --status Signed`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := types.ParseContractValue(value)
			if err != nil {
				return err
			}
			return addInteraction(cmd, args[0], types.NewContract(description, v, status))
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "what the contract covers")
	cmd.Flags().StringVar(&value, "value", "0", "contract value")
	cmd.Flags().StringVar(&status, "status", "", "contract status")
	return cmd
}

func newInteractionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <number>",
		Short: "List a client's interactions",
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
			c, err := s.manager.Store().At(idx)
			if err != nil {
				return err
			}
			return printInteractions(s.out, s.manager.Registry().ListFor(c.IDCard))
		},
	}
}
