package model

import (
	"fmt"
	"strings"
)

// Role is the capability set a user registered with.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleProvider Role = "PROVIDER"
	RoleBoth     Role = "BOTH"
)

// ParseRole accepts the three known roles, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleProvider, RoleBoth:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) IsCustomer() bool {
	switch r {
	case RoleCustomer, RoleBoth:
		return true
	case RoleProvider:
		return false
	default:
		return false
	}
}

func (r Role) IsProvider() bool {
	switch r {
	case RoleProvider, RoleBoth:
		return true
	case RoleCustomer:
		return false
	default:
		return false
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleBoth:
		return true
	default:
		return false
	}
}
