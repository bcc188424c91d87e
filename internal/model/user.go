package model

import "time"

// Role enumerates the access levels a user can hold.  Roles are stored
// as small integers in the `users.role` column.  Matching against a
// required role set is done by exact membership; an admin does not
// implicitly satisfy any other role.
type Role int

const (
    RoleAdmin Role = 0 // elevated role for management endpoints
    RoleUser  Role = 1 // default role assigned on registration
)

// User represents an application account as stored in the `users`
// table.  The password is never kept in plain text; only its bcrypt
// hash is persisted.  A user's reservations are not embedded here:
// they are derived by querying the reservations table on its owner
// column, which keeps the two entities referentially coherent without
// a user-side reference list.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Login        – unique login name.
//  PasswordHash – bcrypt hashed password.
//  Role         – access level (RoleAdmin or RoleUser).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Login        string    // users.login
    PasswordHash string    // users.password_hash
    Role         Role      // users.role
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}
