// ABOUTME: Identity record returned to callers and the well-known demo identity
// ABOUTME: Identities are rebuilt per request and never cached

package auth

// Identity is the user-facing record resolved for a request.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// Demo identity constants.
const (
	DemoUserID      = "u_demo"
	DemoUserName    = "Demo User"
	DemoUserEmail   = "demo@myfilmi.com"
	DemoUserPicture = "https://i.pravatar.cc/120?u=demo"
)

// DemoIdentity returns the fixed identity used by demo login and the demo fallback.
func DemoIdentity() Identity {
	return Identity{
		ID:      DemoUserID,
		Name:    DemoUserName,
		Email:   DemoUserEmail,
		Picture: DemoUserPicture,
	}
}
