package auth

// Role is the closed set of user roles. Anything outside the set is treated
// as deny-all for role-conditioned permissions, never as an error.
type Role string

const (
	RoleSystemAdmin Role = "system_admin"
	RoleOrgAdmin    Role = "org_admin"
	RoleManager     Role = "manager"
	RoleInspector   Role = "inspector"
	RoleClient      Role = "client"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSystemAdmin, RoleOrgAdmin, RoleManager, RoleInspector, RoleClient:
		return true
	}
	return false
}

// Permission names form a closed set. The resolver is total over all string
// inputs: an unrecognized name resolves to deny.
type Permission string

const (
	PermViewDashboard      Permission = "view_dashboard"
	PermViewReports        Permission = "view_reports"
	PermCreateOrganization Permission = "create_organization"
	PermManageOrganization Permission = "manage_organization"
	PermInviteUser         Permission = "invite_user"
	PermCreateInspection   Permission = "create_inspection"
	PermManageActionPlans  Permission = "manage_action_plans"
	PermExportData         Permission = "export_data"
	PermSystemAdmin        Permission = "system_admin"
)

// Resolver maps (role, permission) pairs to allow/deny decisions. It holds
// no state and is safe for concurrent use.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

func (Resolver) HasPermission(user *User, permission Permission) bool {
	if user == nil {
		return false
	}

	switch permission {
	case PermViewDashboard, PermViewReports:
		return true
	case PermCreateOrganization, PermSystemAdmin:
		return user.Role == RoleSystemAdmin
	case PermManageOrganization, PermInviteUser:
		return user.Role == RoleSystemAdmin || user.Role == RoleOrgAdmin
	case PermCreateInspection, PermManageActionPlans, PermExportData:
		return user.Role.IsValid() && user.Role != RoleClient
	default:
		return false
	}
}

// CanCreateSubsidiary augments create_organization with a self-organization
// check: an org admin may create subsidiaries under their own organization.
func (r Resolver) CanCreateSubsidiary(user *User, orgID string) bool {
	if r.HasPermission(user, PermCreateOrganization) {
		return true
	}
	return user != nil && user.Role == RoleOrgAdmin && user.OrgID == orgID
}
