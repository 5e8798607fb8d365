package domain

// Roles are a closed enum. A user's role is decided once, when their
// signup code is issued, and is never accepted from client input on
// the verify step.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
