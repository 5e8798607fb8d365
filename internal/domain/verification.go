package domain

import "time"

// Purpose tags a verification entry with the state transition it gates.
type Purpose string

const (
	PurposeSignup        Purpose = "signup"
	PurposePasswordReset Purpose = "password_reset"
)

// EscrowPayload holds the user-supplied data escrowed alongside a code
// until the code is confirmed. Password material is stored as a bcrypt
// hash; plaintext never rests in the table.
type EscrowPayload struct {
	Name            string `dynamodbav:"name,omitempty"`
	PasswordHash    string `dynamodbav:"password_hash,omitempty"`
	Role            string `dynamodbav:"role,omitempty"`
	NewPasswordHash string `dynamodbav:"new_password_hash,omitempty"`
}

// VerificationEntry is a pending one-time code plus its escrowed payload.
// PK: email, SK: purpose. ExpiresAt doubles as the DynamoDB TTL attribute,
// but the TTL sweep is only a storage optimization: liveness is always the
// read-time predicate Live().
type VerificationEntry struct {
	Email     string        `dynamodbav:"email"`
	Purpose   Purpose       `dynamodbav:"purpose"`
	Code      string        `dynamodbav:"code"`
	Payload   EscrowPayload `dynamodbav:"payload"`
	IssuedAt  int64         `dynamodbav:"issued_at"`
	ExpiresAt int64         `dynamodbav:"expires_at"` // Unix seconds
}

// Live reports whether the entry is still honorable at the given instant.
// An entry the TTL sweep has not physically removed yet is still dead
// once this returns false.
func (v *VerificationEntry) Live(now time.Time) bool {
	return v.ExpiresAt > now.Unix()
}
