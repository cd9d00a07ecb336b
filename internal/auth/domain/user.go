package domain

import "time"

type ID string

// User is the stored account record. PasswordHash is the only persisted
// credential material and is never serialized back to a caller.
type User struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
