// Package sqlite implements a snapshot backend that stores the CRM state
// in a SQLite database file instead of the comma-separated data file.
// Each save writes a complete new database; there is no incremental
// update.
package sqlite

// Schema DDL for the snapshot tables.
const (
	createClients = `CREATE TABLE clients (
    position INTEGER PRIMARY KEY,
    id_card TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL,
    policy_number INTEGER NOT NULL,
    company_name TEXT NOT NULL
);`

	createInteractions = `CREATE TABLE interactions (
    interaction_id TEXT PRIMARY KEY,
    id_card TEXT NOT NULL,
    seq INTEGER NOT NULL,
    kind TEXT NOT NULL,
    description TEXT NOT NULL,
    sales_person TEXT,
    date TEXT,
    hour TEXT,
    value REAL,
    status TEXT
);`
)

// Index DDL.
const (
	idxClientsIDCard      = `CREATE INDEX idx_clients_id_card ON clients(id_card);`
	idxInteractionsIDCard = `CREATE INDEX idx_interactions_id_card ON interactions(id_card, seq);`
)

// schemaDDL lists all CREATE statements in execution order.
var schemaDDL = []string{
	createClients,
	createInteractions,
	idxClientsIDCard,
	idxInteractionsIDCard,
}
