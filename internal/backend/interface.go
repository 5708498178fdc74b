package backend

import (
	"context"

	"myexpense/internal/core"
)

// Ports for the record store.
type (
	// Appender persists a new transaction. It rejects invalid records
	// without writing anything.
	Appender interface {
		Append(ctx context.Context, t core.Transaction) error
	}

	// Deleter removes a transaction. Deleting an unknown id is not an error
	// and reports false.
	Deleter interface {
		Delete(ctx context.Context, id string) (deleted bool, err error)
	}

	// Lister returns the committed transactions, newest first.
	Lister interface {
		All(ctx context.Context) ([]core.Transaction, error)
	}

	// Store is the full record store a backend provides.
	Store interface {
		Appender
		Deleter
		Lister
	}
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the store instance and optional cleanup function
type BackendResult struct {
	Store   Store
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a store based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
