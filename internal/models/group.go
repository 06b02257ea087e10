package models

// Group represents a set of users who split costs with each other.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string

	// Members is the ordered list of member user IDs. Fixed at creation
	// after validation against the user table.
	Members []string

	// Transactions is the ordered list of transaction IDs recorded against
	// this group, appended as transactions are created.
	Transactions []string

	// Details is optional free-text about the group.
	Details string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
