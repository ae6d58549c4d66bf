// Package palette holds the Bootstrap theme palette and the engine operations
// that produce new palettes: the randomised generator and the import classifier.
package palette

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/bstheme/internal/colour"
)

// Role names one of the ten colours of a theme palette.
type Role string

const (
	// Brand roles
	RolePrimary   Role = "primary"
	RoleSecondary Role = "secondary"
	RoleSuccess   Role = "success"
	RoleInfo      Role = "info"
	RoleWarning   Role = "warning"
	RoleDanger    Role = "danger"

	// Neutral roles
	RoleLight     Role = "light"
	RoleDark      Role = "dark"
	RoleBodyBg    Role = "bodyBg"
	RoleBodyColor Role = "bodyColor"
)

// BrandRoles returns the six semantic roles in display order.
func BrandRoles() []Role {
	return []Role{RolePrimary, RoleSecondary, RoleSuccess, RoleInfo, RoleWarning, RoleDanger}
}

// NeutralRoles returns the four surface and text roles in display order.
func NeutralRoles() []Role {
	return []Role{RoleLight, RoleDark, RoleBodyBg, RoleBodyColor}
}

// AllRoles returns every role, brand roles first.
func AllRoles() []Role {
	return append(BrandRoles(), NeutralRoles()...)
}

// IsBrand reports whether r is one of the six brand roles.
func (r Role) IsBrand() bool {
	switch r {
	case RolePrimary, RoleSecondary, RoleSuccess, RoleInfo, RoleWarning, RoleDanger:
		return true
	}
	return false
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range AllRoles() {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole resolves a role name case-insensitively. Both "bodyBg" and
// "body-bg" forms are accepted.
func ParseRole(name string) (Role, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	for _, r := range AllRoles() {
		if strings.ToLower(string(r)) == key {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q (valid roles: %s)", name, strings.Join(roleNames(), ", "))
}

func roleNames() []string {
	roles := AllRoles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}

// Palette is a complete Bootstrap theme palette. Every field holds a hex colour.
type Palette struct {
	Primary   string `json:"primary" yaml:"primary" validate:"required,hexcolour"`
	Secondary string `json:"secondary" yaml:"secondary" validate:"required,hexcolour"`
	Success   string `json:"success" yaml:"success" validate:"required,hexcolour"`
	Info      string `json:"info" yaml:"info" validate:"required,hexcolour"`
	Warning   string `json:"warning" yaml:"warning" validate:"required,hexcolour"`
	Danger    string `json:"danger" yaml:"danger" validate:"required,hexcolour"`
	Light     string `json:"light" yaml:"light" validate:"required,hexcolour"`
	Dark      string `json:"dark" yaml:"dark" validate:"required,hexcolour"`
	BodyBg    string `json:"bodyBg" yaml:"bodyBg" validate:"required,hexcolour"`
	BodyColor string `json:"bodyColor" yaml:"bodyColor" validate:"required,hexcolour"`
}

// Default returns the stock Bootstrap 5.3 palette.
func Default() Palette {
	return Palette{
		Primary:   "#0d6efd",
		Secondary: "#6c757d",
		Success:   "#198754",
		Info:      "#0dcaf0",
		Warning:   "#ffc107",
		Danger:    "#dc3545",
		Light:     "#f8f9fa",
		Dark:      "#212529",
		BodyBg:    "#ffffff",
		BodyColor: "#212529",
	}
}

// Get returns the colour held by role, or "" for an unknown role.
func (p Palette) Get(role Role) string {
	if f := p.field(role); f != nil {
		return *f
	}
	return ""
}

// With returns a copy of p with role set to hex. Unknown roles leave the copy unchanged.
func (p Palette) With(role Role, hex string) Palette {
	if f := p.field(role); f != nil {
		*f = hex
	}
	return p
}

// Canonical returns a copy of p with every valid colour in lowercase
// #rrggbb form. Invalid values are left for validation to report.
func (p Palette) Canonical() Palette {
	for _, role := range AllRoles() {
		if hex, ok := colour.Canonical(p.Get(role)); ok {
			p = p.With(role, hex)
		}
	}
	return p
}

func (p *Palette) field(role Role) *string {
	switch role {
	case RolePrimary:
		return &p.Primary
	case RoleSecondary:
		return &p.Secondary
	case RoleSuccess:
		return &p.Success
	case RoleInfo:
		return &p.Info
	case RoleWarning:
		return &p.Warning
	case RoleDanger:
		return &p.Danger
	case RoleLight:
		return &p.Light
	case RoleDark:
		return &p.Dark
	case RoleBodyBg:
		return &p.BodyBg
	case RoleBodyColor:
		return &p.BodyColor
	}
	return nil
}

// LockSet marks roles that engine operations must leave untouched.
// A missing role is unlocked.
type LockSet map[Role]bool

// Locked reports whether role is locked. A nil LockSet locks nothing.
func (l LockSet) Locked(role Role) bool {
	return l[role]
}

// Roles returns the locked roles in palette order.
func (l LockSet) Roles() []Role {
	var roles []Role
	for _, r := range AllRoles() {
		if l[r] {
			roles = append(roles, r)
		}
	}
	return roles
}

// NewLockSet builds a LockSet with the given roles locked.
func NewLockSet(roles ...Role) LockSet {
	l := make(LockSet, len(roles))
	for _, r := range roles {
		l[r] = true
	}
	return l
}
