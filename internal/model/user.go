package model

import "time"

// User represents an account record in the `users` table.  The password is
// stored only as a bcrypt hash and is never included in API responses.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  PasswordHash – bcrypt hash of the password.
//  FirstName    – optional display name.
//  LastName     – optional display name.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	CreatedAt    time.Time // users.created_at
}

// UserRepr is the public projection of a User.  The hash stays internal.
type UserRepr struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Repr returns the user's public projection.
func (u *User) Repr() UserRepr {
	return UserRepr{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
