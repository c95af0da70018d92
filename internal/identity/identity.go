package identity

// Role values carried in the session token. Anything else is treated as a
// plain customer role by authorization checks.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the trusted, server-resolved identity. It is only ever
// constructed from a verified session token (or from the user record at
// login time) and is the sole type authorization decisions accept.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  string
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Display projects the client-visible subset of the identity.
func (i Identity) Display() DisplayIdentity {
	return DisplayIdentity{ID: i.ID, Name: i.Name, Email: i.Email, Role: i.Role}
}

// DisplayIdentity is the untrusted projection written to the readable mirror
// cookie and rendered by the client. It deliberately lacks IsAdmin and is
// never accepted by the route guard or any handler for authorization.
type DisplayIdentity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
