package models

// Member is the authenticated user's profile as returned by the backend.
type Member struct {
	MemberID int       `json:"memberId"`
	Account  string    `json:"account"`
	Name     string    `json:"name"`
	Number   string    `json:"number"`
	JoinTime Timestamp `json:"joinTime"`
}

// DisplayName prefers the free-form name and falls back to the account.
func (m Member) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.Account
}

// ProfileUpdate is the PUT /me payload. Password is omitted when empty so
// the backend keeps the current one.
type ProfileUpdate struct {
	Name     string `json:"name"`
	Number   string `json:"number"`
	Password string `json:"password,omitempty"`
}

// Registration is the register payload.
type Registration struct {
	Account  string `json:"account"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Number   string `json:"number"`
}

// Credentials is the login payload.
type Credentials struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}
