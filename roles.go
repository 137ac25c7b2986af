package console

import "strings"

// Role is the closed set of principals the console knows about.
type Role string

const (
	// RoleNone is the zero value, no principal
	RoleNone Role = ""
	// RoleAdmin manages users and wallets
	RoleAdmin Role = "ADMIN"
	// RoleFinanceManager reviews wallets and processes payments
	RoleFinanceManager Role = "FINANCE_MANAGER"
	// RoleCustomer owns a wallet and creates payments
	RoleCustomer Role = "CUSTOMER"
)

// IsValid checks if the role is one of the predefined roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleFinanceManager, RoleCustomer:
		return true
	default:
		return false
	}
}

// HomeRoute is the landing route after login, false for invalid roles.
func (r Role) HomeRoute() (RouteName, bool) {
	switch r {
	case RoleAdmin:
		return RouteAdminUsers, true
	case RoleFinanceManager:
		return RoutePaymentDashboard, true
	case RoleCustomer:
		return RouteMyWallet, true
	default:
		return "", false
	}
}

// In reports whether r is a member of roles.
func (r Role) In(roles ...Role) bool {
	if !r.IsValid() {
		return false
	}
	for _, candidate := range roles {
		if candidate == r {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleFinanceManager,
		RoleCustomer,
	}
}

// ParseRole safely parses a string into a Role
func ParseRole(roleStr string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(roleStr)))
	return role, role.IsValid()
}
