package sqlite

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/insurapro/internal/crm"
	"github.com/mesh-intelligence/insurapro/internal/paths"
	"github.com/mesh-intelligence/insurapro/pkg/types"
)

// Backend stores snapshots in a SQLite database file.
type Backend struct{}

// NewBackend returns a SQLite snapshot backend.
func NewBackend() *Backend {
	return &Backend{}
}

var _ crm.Backend = (*Backend)(nil)

// newUUID generates a UUID v7 string for interaction rows.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Save writes snap into a new database next to path and renames it over
// path, keeping the old file's permissions and any symlink at path.
// Interactions whose identity card matches no client are kept so a load
// returns the same registry. Errors wrap types.ErrIO.
func (b *Backend) Save(path string, snap crm.Snapshot) error {
	target, mode, err := paths.SaveTarget(path)
	if err != nil {
		return fmt.Errorf("%w: resolving %s: %v", types.ErrIO, path, err)
	}
	tmp, err := paths.CreateTemp(target, ".crm-*.db", mode)
	if err != nil {
		return fmt.Errorf("%w: creating temp database for %s: %v", types.ErrIO, target, err)
	}
	tmpName := tmp.Name()
	tmp.Close()

	if err := writeSnapshot(tmpName, snap); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", types.ErrIO, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming temp database: %v", types.ErrIO, err)
	}
	return nil
}

func writeSnapshot(dbPath string, snap crm.Snapshot) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	clientStmt, err := tx.Prepare(`INSERT INTO clients
		(position, id_card, first_name, last_name, email, policy_number, company_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing client insert: %w", err)
	}
	defer clientStmt.Close()

	for i, c := range snap.Clients {
		if _, err := clientStmt.Exec(i, c.IDCard, c.FirstName, c.LastName, c.Email, c.PolicyNumber, c.CompanyName); err != nil {
			return fmt.Errorf("inserting client %s: %w", c.IDCard, err)
		}
	}

	if snap.Interactions != nil {
		if err := insertInteractions(tx, snap.Interactions); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}

func insertInteractions(tx *sql.Tx, reg *crm.Registry) error {
	stmt, err := tx.Prepare(`INSERT INTO interactions
		(interaction_id, id_card, seq, kind, description, sales_person, date, hour, value, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing interaction insert: %w", err)
	}
	defer stmt.Close()

	for _, idCard := range reg.Keys() {
		for seq, in := range reg.ListFor(idCard) {
			var salesPerson, date, hour, status sql.NullString
			var value sql.NullFloat64
			switch in.Kind {
			case types.KindAppointment:
				salesPerson = sql.NullString{String: in.Appointment.SalesPerson, Valid: true}
				date = sql.NullString{String: in.Appointment.Date, Valid: true}
				hour = sql.NullString{String: in.Appointment.Hour, Valid: true}
			case types.KindContract:
				value = sql.NullFloat64{Float64: in.Contract.Value, Valid: true}
				status = sql.NullString{String: in.Contract.Status, Valid: true}
			}
			if _, err := stmt.Exec(newUUID(), idCard, seq, string(in.Kind), in.Description,
				salesPerson, date, hour, value, status); err != nil {
				return fmt.Errorf("inserting interaction for %s: %w", idCard, err)
			}
		}
	}
	return nil
}

// Load reads a database written by Save. A missing file wraps
// types.ErrIO. A file that exists but is not a database Save wrote wraps
// types.ErrUnreadable. Rows with an unknown interaction kind are skipped
// with a warning.
func (b *Backend) Load(path string) (crm.Snapshot, []types.Warning, error) {
	if _, err := os.Stat(path); err != nil {
		return crm.Snapshot{}, nil, fmt.Errorf("%w: opening %s: %v", types.ErrIO, path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return crm.Snapshot{}, nil, fmt.Errorf("%w: opening %s: %v", types.ErrUnreadable, path, err)
	}
	defer db.Close()

	clients, err := loadClients(db)
	if err != nil {
		return crm.Snapshot{}, nil, fmt.Errorf("%w: %s: %v", types.ErrUnreadable, path, err)
	}
	reg, warnings, err := loadInteractions(db)
	if err != nil {
		return crm.Snapshot{}, nil, fmt.Errorf("%w: %s: %v", types.ErrUnreadable, path, err)
	}
	return crm.Snapshot{Clients: clients, Interactions: reg}, warnings, nil
}

func loadClients(db *sql.DB) ([]types.Client, error) {
	rows, err := db.Query(`SELECT id_card, first_name, last_name, email, policy_number, company_name
		FROM clients ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	defer rows.Close()

	clients := []types.Client{}
	for rows.Next() {
		var c types.Client
		if err := rows.Scan(&c.IDCard, &c.FirstName, &c.LastName, &c.Email, &c.PolicyNumber, &c.CompanyName); err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func loadInteractions(db *sql.DB) (*crm.Registry, []types.Warning, error) {
	rows, err := db.Query(`SELECT id_card, kind, description, sales_person, date, hour, value, status
		FROM interactions ORDER BY id_card, seq`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()

	reg := crm.NewRegistry()
	var warnings []types.Warning
	for rows.Next() {
		var idCard, kind, description string
		var salesPerson, date, hour, status sql.NullString
		var value sql.NullFloat64
		if err := rows.Scan(&idCard, &kind, &description, &salesPerson, &date, &hour, &value, &status); err != nil {
			return nil, nil, fmt.Errorf("scanning interaction: %w", err)
		}

		k, err := types.ParseKind(kind)
		if err != nil {
			warnings = append(warnings, types.Warning{Message: fmt.Sprintf("client %s: ignoring interaction: %v", idCard, err)})
			continue
		}
		switch k {
		case types.KindAppointment:
			reg.Append(idCard, types.NewAppointment(description, salesPerson.String, date.String, hour.String))
		case types.KindContract:
			reg.Append(idCard, types.NewContract(description, value.Float64, status.String))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return reg, warnings, nil
}
