package model

import "time"

// User represents an account that can book tables.  Passwords are
// stored as bcrypt hashes and the raw password never leaves the auth
// handler.  Role drives authorization: admins administer tables and
// may reschedule any booking, customers own their bookings.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique login email, normalized to lower case.
//  PasswordHash – bcrypt hash of the password.
//  Role         – account role (ADMIN or CUSTOMER).
//  IsActive     – soft-disable flag for the account.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Role values stored in users.role and carried in the JWT "role" claim.
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)
