// Package config handles configuration loading for filmi-edge.
//
// # Overview
//
// Configuration is built once at startup and passed explicitly to every
// component. Nothing reads the process environment after Load returns.
//
// Sources, later wins:
//
//  1. Built-in defaults (see Default)
//  2. Optional config file named by FILMI_CONFIG (.yaml, .yml or .toml)
//  3. Environment variables
//
// # Environment Variables
//
//	PORT          listen port (default 3000)
//	DEMO          "1" or "true" enables demo login and the demo fallback identity
//	JWT_SECRET    HS256 signing key (default "dev-secret", insecure)
//	CORS_ORIGINS  comma-separated origin allowlist (default https://myfilmi.com)
//	LOG_LEVEL     debug, info, warn, error
//	LOG_FORMAT    text, json
//
// # Configuration File
//
// File values can reference environment variables with ${VAR_NAME}:
//
//	server:
//	  port: 3000
//	  read_header_timeout: "10s"
//	  shutdown_timeout: "5s"
//
//	auth:
//	  jwt_secret: "${FILMI_JWT_SECRET}"
//	  demo: false
//	  token_ttl: "168h"
//
//	cors:
//	  origins:
//	    - "https://myfilmi.com"
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
//	tailscale:
//	  enabled: false
//	  hostname: "filmi-edge"
//	  auth_key: "${TS_AUTHKEY}"
//
// The same keys are accepted in TOML form.
package config
