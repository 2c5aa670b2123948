// Package csvfile reads and writes the CRM data file: one header line and
// one comma-separated row per client interaction, or per client without
// interactions.
//
// Fields are joined with a bare comma. There is no quoting, so a value
// containing a comma shifts the columns after it when the file is read
// back.
package csvfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/insurapro/internal/crm"
	"github.com/mesh-intelligence/insurapro/pkg/types"
)

// Column positions in a data row.
const (
	colIDCard = iota
	colFirstName
	colLastName
	colEmail
	colPolicyNumber
	colCompanyName
	colType
	colDescription
	colSalesPerson
	colDate
	colHour
	colValue
	colStatus

	numColumns
)

// Columns is the fixed header schema.
var Columns = []string{
	"ID_Card", "First_Name", "Last_Name", "Email", "Policy_Number", "Company_Name",
	"Interaction_Type", "Description", "Sales_Person", "Date", "Hour", "Value", "Status",
}

// Header is the first line of every data file.
var Header = strings.Join(Columns, ",")

// Encode writes the header and one row per (client, interaction) pair in
// store order. A client without interactions gets one row with empty
// interaction columns. Registry entries with no matching client are not
// written.
func Encode(w io.Writer, snap crm.Snapshot) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	reg := snap.Interactions
	if reg == nil {
		reg = crm.NewRegistry()
	}
	for _, c := range snap.Clients {
		history := reg.ListFor(c.IDCard)
		if len(history) == 0 {
			if err := writeRow(bw, clientRow(c)); err != nil {
				return err
			}
			continue
		}
		for _, in := range history {
			row := clientRow(c)
			fillInteraction(&row, in)
			if err := writeRow(bw, row); err != nil {
				return err
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing rows: %w", err)
	}
	return nil
}

func clientRow(c types.Client) [numColumns]string {
	var row [numColumns]string
	row[colIDCard] = c.IDCard
	row[colFirstName] = c.FirstName
	row[colLastName] = c.LastName
	row[colEmail] = c.Email
	row[colPolicyNumber] = strconv.Itoa(c.PolicyNumber)
	row[colCompanyName] = c.CompanyName
	return row
}

func fillInteraction(row *[numColumns]string, in types.Interaction) {
	row[colType] = string(in.Kind)
	row[colDescription] = in.Description
	switch in.Kind {
	case types.KindAppointment:
		row[colSalesPerson] = in.Appointment.SalesPerson
		row[colDate] = in.Appointment.Date
		row[colHour] = in.Appointment.Hour
	case types.KindContract:
		row[colValue] = types.FormatValue(in.Contract.Value)
		row[colStatus] = in.Contract.Status
	}
}

func writeRow(w *bufio.Writer, row [numColumns]string) error {
	if _, err := w.WriteString(strings.Join(row[:], ",") + "\n"); err != nil {
		return fmt.Errorf("writing row for %s: %w", row[colIDCard], err)
	}
	return nil
}

// Decode parses a data file into a fresh snapshot. The first line is the
// header and is skipped without inspection; empty lines are skipped. Rows
// have no length limit.
//
// Rows that cannot be used are reported as warnings and skipped; they
// never stop the remaining rows from loading. The first row for an
// identity card creates the client, and a bad policy number on that row
// skips it. Later rows for the same card ignore the client columns. Every
// row with an interaction type contributes one interaction under its
// identity card, whether or not the card names a known client. A bad
// contract value loads as 0.0 with a warning. The error is non-nil only
// if reading r fails.
func Decode(r io.Reader) (crm.Snapshot, []types.Warning, error) {
	var (
		clients  = []types.Client{}
		registry = crm.NewRegistry()
		seen     = make(map[string]bool)
		warnings []types.Warning
	)
	warn := func(line int, format string, args ...any) {
		warnings = append(warnings, types.Warning{Line: line, Message: fmt.Sprintf(format, args...)})
	}

	decodeRow := func(lineNo int, line string) {
		fields := strings.Split(line, ",")
		if len(fields) > numColumns {
			warn(lineNo, "row has %d columns, expected %d; extra columns ignored", len(fields), numColumns)
		}
		var row [numColumns]string
		copy(row[:], fields)

		idCard := row[colIDCard]
		if !seen[idCard] {
			policy, err := types.ParsePolicyNumber(row[colPolicyNumber])
			if err != nil {
				warn(lineNo, "skipping row: %v", err)
				return
			}
			clients = append(clients, types.Client{
				IDCard:       idCard,
				FirstName:    row[colFirstName],
				LastName:     row[colLastName],
				Email:        row[colEmail],
				PolicyNumber: policy,
				CompanyName:  row[colCompanyName],
			})
			seen[idCard] = true
		}

		if row[colType] == "" {
			return
		}
		in, ok := decodeInteraction(row, func(format string, args ...any) { warn(lineNo, format, args...) })
		if ok {
			registry.Append(idCard, in)
		}
	}

	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return crm.Snapshot{}, warnings, fmt.Errorf("reading line %d: %w", lineNo, err)
		}
		line := strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
		if lineNo > 1 && line != "" {
			decodeRow(lineNo, line)
		}
		if err == io.EOF {
			break
		}
	}

	return crm.Snapshot{Clients: clients, Interactions: registry}, warnings, nil
}

// decodeInteraction builds the interaction described by a row. It returns
// false when the type column names no known kind.
func decodeInteraction(row [numColumns]string, warn func(string, ...any)) (types.Interaction, bool) {
	kind, err := types.ParseKind(row[colType])
	if err != nil {
		warn("ignoring interaction: %v", err)
		return types.Interaction{}, false
	}

	switch kind {
	case types.KindAppointment:
		return types.NewAppointment(row[colDescription], row[colSalesPerson], row[colDate], row[colHour]), true
	case types.KindContract:
		value := 0.0
		if row[colValue] != "" {
			v, err := types.ParseContractValue(row[colValue])
			if err != nil {
				warn("%v, using 0.00", err)
			} else {
				value = v
			}
		}
		return types.NewContract(row[colDescription], value, row[colStatus]), true
	}
	return types.Interaction{}, false
}
