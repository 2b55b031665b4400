// Package datastore keeps the sqlite index of backlog notes used by the dashboard.
package datastore

// Store is the storage surface the dashboard rebuilds into.
type Store interface {
	// Connect opens the underlying database.
	Connect() error

	// CreateTable runs a CREATE TABLE IF NOT EXISTS statement.
	CreateTable(schema string) error

	// BatchInsert inserts records into table in one transaction.
	BatchInsert(table string, records []map[string]any) error

	// Close releases the database.
	Close() error
}
