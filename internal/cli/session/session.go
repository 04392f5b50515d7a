package session

// Profile is the admin profile snapshot returned by the backend at login.
// Fields beyond these are display-only and not modeled client-side.
type Profile struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Store holds the current admin session: an opaque bearer token and the
// profile snapshot. Token and profile are always written and cleared as a
// pair; only login/signup success, logout, and the expired-session handler
// mutate it.
type Store interface {
	// Set persists both halves of the session together.
	Set(token string, profile *Profile) error

	// Token returns the stored bearer token, or empty string if there is
	// no session.
	Token() (string, error)

	// Profile returns the stored profile snapshot. A missing or corrupt
	// entry reads as nil, never as an error.
	Profile() *Profile

	// Clear removes both entries. Safe to call when no session exists.
	Clear() error
}
