package models

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address.
	Email string

	// Groups is the ordered list of group IDs the user belongs to.
	// Appended to when the user is included in a new group; never
	// otherwise mutated.
	Groups []string

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64
}
