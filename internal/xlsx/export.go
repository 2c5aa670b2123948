// Package xlsx exports the CRM state to an Excel workbook with one sheet
// of clients and one sheet of interactions. Export is one-way; the
// workbook is never read back.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/insurapro/internal/crm"
	"github.com/mesh-intelligence/insurapro/pkg/types"
)

// Sheet names.
const (
	ClientsSheet      = "Clients"
	InteractionsSheet = "Interactions"
)

var clientHeader = []any{"ID_Card", "First_Name", "Last_Name", "Email", "Policy_Number", "Company_Name"}

var interactionHeader = []any{"ID_Card", "Seq", "Interaction_Type", "Description", "Sales_Person", "Date", "Hour", "Value", "Status"}

// Export writes snap to a workbook at path. Interactions are listed per
// client in store order, numbered from 1 within each client. Errors wrap
// types.ErrIO.
func Export(path string, snap crm.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ClientsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(InteractionsSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	if err := writeRow(f, ClientsSheet, 1, clientHeader); err != nil {
		return err
	}
	if err := writeRow(f, InteractionsSheet, 1, interactionHeader); err != nil {
		return err
	}

	reg := snap.Interactions
	if reg == nil {
		reg = crm.NewRegistry()
	}
	next := 2
	for i, c := range snap.Clients {
		row := []any{c.IDCard, c.FirstName, c.LastName, c.Email, c.PolicyNumber, c.CompanyName}
		if err := writeRow(f, ClientsSheet, i+2, row); err != nil {
			return err
		}
		for seq, in := range reg.ListFor(c.IDCard) {
			if err := writeRow(f, InteractionsSheet, next, interactionRow(c.IDCard, seq+1, in)); err != nil {
				return err
			}
			next++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: writing %s: %v", types.ErrIO, path, err)
	}
	return nil
}

func interactionRow(idCard string, seq int, in types.Interaction) []any {
	row := []any{idCard, seq, string(in.Kind), in.Description, "", "", "", nil, ""}
	switch in.Kind {
	case types.KindAppointment:
		row[4] = in.Appointment.SalesPerson
		row[5] = in.Appointment.Date
		row[6] = in.Appointment.Hour
	case types.KindContract:
		row[7] = in.Contract.Value
		row[8] = in.Contract.Status
	}
	return row
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}
