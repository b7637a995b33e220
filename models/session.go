package models

// Role is the capability a requester acts with.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
)

// Session identifies who is making a request. It is built by the HTTP layer
// and passed explicitly into every authorization check.
type Session struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

func (s Session) IsZero() bool {
	return s.UserID == ""
}

func (s Session) IsProvider() bool {
	return s.Role == RoleProvider
}
