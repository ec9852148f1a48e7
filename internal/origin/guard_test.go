// ABOUTME: Tests for the origin allow-list guard
// ABOUTME: Covers exact matching, empty origins and the allowed-list copy

package origin

import (
	"errors"
	"testing"
)

func TestIsAllowed(t *testing.T) {
	allowlist := []string{"https://a.com"}

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"listed", "https://a.com", true},
		{"unlisted", "https://b.com", false},
		{"absent", "", true},
		{"case differs", "https://A.com", false},
		{"trailing slash", "https://a.com/", false},
		{"scheme differs", "http://a.com", false},
		{"explicit port", "https://a.com:443", false},
		{"null origin", "null", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAllowed(tt.origin, allowlist); got != tt.want {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
			}
			if got := NewGuard(allowlist).IsAllowed(tt.origin); got != tt.want {
				t.Errorf("Guard.IsAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestGuard_Check(t *testing.T) {
	g := NewGuard([]string{"https://a.com", "https://b.com"})

	if err := g.Check("https://b.com"); err != nil {
		t.Errorf("Check(allowed) = %v, want nil", err)
	}
	if err := g.Check(""); err != nil {
		t.Errorf("Check(absent) = %v, want nil", err)
	}
	if err := g.Check("https://evil.com"); !errors.Is(err, ErrOriginNotAllowed) {
		t.Errorf("Check(denied) = %v, want ErrOriginNotAllowed", err)
	}
}

func TestGuard_AllowlistIsImmutable(t *testing.T) {
	src := []string{"https://a.com"}
	g := NewGuard(src)

	src[0] = "https://evil.com"
	if !g.IsAllowed("https://a.com") || g.IsAllowed("https://evil.com") {
		t.Fatal("guard changed after mutating the source slice")
	}

	got := g.Allowlist()
	got[0] = "https://evil.com"
	if g.IsAllowed("https://evil.com") {
		t.Fatal("guard changed after mutating Allowlist() result")
	}
}

func TestIsAllowed_EmptyAllowlist(t *testing.T) {
	if IsAllowed("https://a.com", nil) {
		t.Error("empty allowlist should deny declared origins")
	}
	if !IsAllowed("", nil) {
		t.Error("empty allowlist should still allow absent origins")
	}
}
