// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrNotFound is returned when a referenced user, group, or transaction
// does not exist. Conditional appends return it instead of silently
// succeeding so callers can distinguish a missing target from a write
// failure.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. Generates ID and CreatedAt if unset.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID, including their ordered group list.
	// Returns ErrNotFound if the user does not exist.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID. Users that do
	// not exist are omitted from the result, not reported as errors.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// AppendUserGroup atomically appends a group ID to a user's group
	// list, conditional on the user existing. Returns ErrNotFound when
	// the user does not exist.
	AppendUserGroup(ctx context.Context, userID, groupID string) error

	// CreateGroup persists a new group with its member list.
	// Generates ID and CreatedAt if unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, including its ordered member and
	// transaction lists. Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// AppendGroupTransaction atomically appends a transaction ID to a
	// group's transaction list, conditional on the group existing.
	// Returns ErrNotFound when the group does not exist.
	AppendGroupTransaction(ctx context.Context, groupID, transID string) error

	// CreateTransaction persists a new transaction record, including its
	// derived payable map. Generates ID and CreatedAt if unset.
	CreateTransaction(ctx context.Context, trans *models.Transaction) error

	// GetTransaction retrieves a transaction by ID.
	// Returns ErrNotFound if the transaction does not exist.
	GetTransaction(ctx context.Context, transID string) (*models.Transaction, error)

	// GetTransactionsByIDs retrieves the given transactions in order.
	// Any missing ID fails the whole call with ErrNotFound: a group that
	// references a transaction which cannot be resolved is corrupt data,
	// not a partial result.
	GetTransactionsByIDs(ctx context.Context, ids []string) ([]*models.Transaction, error)

	// Close releases any resources held by the store.
	Close() error
}
