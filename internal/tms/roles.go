package tms

// Role mirrors the server's numeric role codes.
type Role int

const (
	RoleUnknown           Role = 0
	RoleEmployee          Role = 1
	RoleDepartmentManager Role = 2
	RoleFinanceManager    Role = 3
	RoleTransportManager  Role = 4
	RoleCEO               Role = 5
	RoleDriver            Role = 6
	RoleSystemAdmin       Role = 7
	RoleGeneralService    Role = 8
	RoleBudgetManager     Role = 9
)

var roleNames = map[Role]string{
	RoleEmployee:          "Employee",
	RoleDepartmentManager: "Department Manager",
	RoleFinanceManager:    "Finance Manager",
	RoleTransportManager:  "Transport Manager",
	RoleCEO:               "CEO",
	RoleDriver:            "Driver",
	RoleSystemAdmin:       "System Admin",
	RoleGeneralService:    "General Service",
	RoleBudgetManager:     "Budget Manager",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether the role code is one the server defines.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}
