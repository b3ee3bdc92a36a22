package model

import "time"

// Role names stored in users.role.  The phone number is the login key;
// the role decides which route groups a token may reach.
const (
	RoleManager = "MANAGER"
	RoleDriver  = "DRIVER"
)

// User represents an application user record as stored in the
// `users` table. The phone number is globally unique and is the
// sole authentication key; the username is a derived, secondary
// field kept for display purposes and never used for login.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Phone        – unique phone number (login key).
//  Username     – unique derived username.
//  FirstName    – given name.
//  LastName     – family name.
//  PasswordHash – bcrypt hashed password.
//  Role         – MANAGER or DRIVER.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Phone        string    // users.phone
	Username     string    // users.username
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// PasswordResetOTP models an entry in the `password_reset_otps`
// table.  Each code belongs to a user; issuance purges all prior
// rows for that user so at most one active code exists at a time.
// Codes are six decimal digits stored as a fixed-width string.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – owner of the code.
//  Code       – six-digit numeric code (100000–999999).
//  CreatedAt  – timestamp of issuance; codes age out after a TTL.
//  IsVerified – set once the code was successfully checked.
type PasswordResetOTP struct {
	ID         uint64    // password_reset_otps.id
	UserID     uint64    // password_reset_otps.user_id
	Code       string    // password_reset_otps.code
	CreatedAt  time.Time // password_reset_otps.created_at
	IsVerified bool      // password_reset_otps.is_verified
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
