package user

// PasswordResetToken is never persisted. It is derived from the user's
// current security stamp plus a coarse time counter, so it stops matching as
// soon as the credential changes or the counter advances past tolerance.
type PasswordResetToken string

// PasswordResetReference is a reversible, URL-safe encoding of a user ID.
// It is transport only, not a secret.
type PasswordResetReference string

type PasswordResetter interface {
	GenerateToken(user User) PasswordResetToken
	EncodeReference(id ID) PasswordResetReference

	// DecodeReference returns ErrInvalidResetReference for malformed input.
	DecodeReference(reference PasswordResetReference) (ID, error)

	// ValidateToken returns nil for a token that matches the user's current
	// security state, ErrResetTokenExpired for an authentic but stale token,
	// and ErrResetTokenMismatch otherwise.
	ValidateToken(user User, token PasswordResetToken) error
}
