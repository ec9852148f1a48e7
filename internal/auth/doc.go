// Package auth resolves the identity of filmi-edge callers.
//
// # Credentials
//
// A credential is an HS256 JWT signed with the configured jwt_secret. It
// carries the identity id as "sub", the full identity as a "user" claim, and
// an "exp" seven days after issuance by default.
//
// ExtractCredential finds a credential in, by precedence:
//
//   - Authorization: Bearer <token> (scheme matched case-insensitively)
//   - the "token" cookie
//
// # Resolution
//
// Resolver.Resolve maps an optional credential to a Resolution:
//
//   - StatusVerified: the credential verified; Identity is what it carried
//   - StatusDemoFallback: no valid credential, demo mode on; Identity is DemoIdentity()
//   - StatusUnauthorized: no valid credential, demo mode off
//
// Invalid and expired credentials are treated exactly like absent ones. The
// reason is kept on the Resolution for logging only.
//
// # Demo Issuance
//
// Issuer.IssueDemo signs a credential for DemoIdentity and returns
// ErrDemoDisabled when demo mode is off.
//
// # HTTP
//
//	IdentityMiddleware(resolver, logger) // attaches a Resolution to the context
//	RequireIdentityHTTP()                // 401 {"error":"unauthorized"} without one
package auth
