package domain

import "time"

// User is the identity record the session state machine operates on.
// The session machinery never creates or deletes users, it only flips
// the Connected flag; provisioning owns the rest of the record.
type User struct {
	ID           string
	Login        string
	PasswordHash string // argon2id encoded
	Connected    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
