// ABOUTME: Identity resolution from an optional credential with demo fallback
// ABOUTME: Verification failures degrade silently to the demo identity or unauthorized

package auth

// Status describes how an identity was obtained.
type Status int

const (
	StatusUnauthorized Status = iota
	StatusVerified
	StatusDemoFallback
)

func (s Status) String() string {
	switch s {
	case StatusVerified:
		return "verified"
	case StatusDemoFallback:
		return "demo_fallback"
	default:
		return "unauthorized"
	}
}

// Resolution is the resolver's answer for one request.
type Resolution struct {
	Identity Identity
	Status   Status
	// Outcome records what happened to a presented credential. It is
	// OutcomeInvalid when no credential was presented.
	Outcome Outcome
}

// Authenticated reports whether the resolution carries an identity.
func (r Resolution) Authenticated() bool {
	return r.Status != StatusUnauthorized
}

// Resolver turns an optional credential into an identity.
type Resolver struct {
	verifier TokenVerifier
	demo     bool
}

// NewResolver creates a resolver. When demo is true, requests without a
// valid credential resolve to DemoIdentity instead of unauthorized.
func NewResolver(verifier TokenVerifier, demo bool) *Resolver {
	return &Resolver{verifier: verifier, demo: demo}
}

// Resolve verifies credential if non-empty and falls back per demo mode.
// An empty credential is treated as absent.
func (r *Resolver) Resolve(credential string) Resolution {
	outcome := OutcomeInvalid
	if credential != "" {
		v := r.verifier.Verify(credential)
		if v.Outcome == OutcomeVerified {
			return Resolution{Identity: v.Identity, Status: StatusVerified, Outcome: OutcomeVerified}
		}
		outcome = v.Outcome
	}

	if r.demo {
		return Resolution{Identity: DemoIdentity(), Status: StatusDemoFallback, Outcome: outcome}
	}
	return Resolution{Status: StatusUnauthorized, Outcome: outcome}
}

// DemoEnabled reports whether the resolver falls back to the demo identity.
func (r *Resolver) DemoEnabled() bool {
	return r.demo
}
