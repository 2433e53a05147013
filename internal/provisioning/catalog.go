package provisioning

// The provisioning catalog is the single declarative description of what a
// freshly registered agency receives: the global permission set, the four
// system roles, the navigation tree, and the per-role grant policy. Changing
// onboarding policy means editing these tables, not the workflow.

// Role codes created for every tenant.
const (
	RoleAdmin      = "ADMIN"
	RoleGuard      = "GUARD"
	RoleSupervisor = "SUPERVISOR"
	RoleAccounts   = "ACCOUNTS"
)

// Menu codes of the fixed navigation tree.
const (
	MenuDashboard      = "Dashboard"
	MenuAdministration = "Administration"
	MenuOperations     = "Operations"
	MenuFinance        = "Finance"
	MenuHR             = "HR"
	MenuMore           = "More"
)

// SubMenuCompanyProfile is granted individually to guard and supervisor roles.
const SubMenuCompanyProfile = "CompanyProfile"

// RoleSeed describes one system role to create per tenant.
type RoleSeed struct {
	Code        string
	Name        string
	Description string
}

// PermissionSeed describes one global resource/action pair.
type PermissionSeed struct {
	Resource    string
	Action      string
	Description string
}

// SubMenuSeed describes one entry beneath a top-level menu.
type SubMenuSeed struct {
	Code         string
	Name         string
	Icon         string
	Route        string
	DisplayOrder int
}

// MenuSeed describes one top-level menu and its children.
type MenuSeed struct {
	Code         string
	Name         string
	Icon         string
	Route        string
	DisplayOrder int
	SubMenus     []SubMenuSeed
}

// RoleGrant is the navigation and permission policy for one role.
type RoleGrant struct {
	AllPermissions bool
	AllMenus       bool
	AllSubMenus    bool

	Menus         []string // top-level menu codes
	SubMenusOf    []string // every submenu under these menu codes
	ExtraSubMenus []string // individually granted submenu codes
}

// Roles lists the four system roles every tenant receives.
var Roles = []RoleSeed{
	{Code: RoleAdmin, Name: "Administrator", Description: "Full access to the agency account"},
	{Code: RoleGuard, Name: "Security Guard", Description: "Field guard with operational access"},
	{Code: RoleSupervisor, Name: "Supervisor", Description: "Supervises guards and site operations"},
	{Code: RoleAccounts, Name: "Accounts", Description: "Billing and payroll access"},
}

// Permissions is the global catalog: five resources, four actions each.
var Permissions = buildPermissions()

func buildPermissions() []PermissionSeed {
	resources := []string{"Users", "Departments", "Roles", "Menus", "FormBuilder"}
	actions := []string{"View", "Create", "Update", "Delete"}

	seeds := make([]PermissionSeed, 0, len(resources)*len(actions))
	for _, resource := range resources {
		for _, action := range actions {
			seeds = append(seeds, PermissionSeed{
				Resource:    resource,
				Action:      action,
				Description: action + " " + resource,
			})
		}
	}
	return seeds
}

// Menus is the fixed navigation tree: six menus, thirty submenus.
var Menus = []MenuSeed{
	{
		Code: MenuDashboard, Name: "Dashboard", Icon: "layout-dashboard", Route: "/dashboard", DisplayOrder: 1,
	},
	{
		Code: MenuAdministration, Name: "Administration", Icon: "shield", Route: "/administration", DisplayOrder: 2,
		SubMenus: []SubMenuSeed{
			{Code: "Users", Name: "Users", Icon: "users", Route: "/administration/users", DisplayOrder: 1},
			{Code: "Roles", Name: "Roles", Icon: "id-badge", Route: "/administration/roles", DisplayOrder: 2},
			{Code: "Departments", Name: "Departments", Icon: "building", Route: "/administration/departments", DisplayOrder: 3},
			{Code: "Permissions", Name: "Permissions", Icon: "lock", Route: "/administration/permissions", DisplayOrder: 4},
			{Code: "Menus", Name: "Menus", Icon: "list", Route: "/administration/menus", DisplayOrder: 5},
			{Code: "FormBuilder", Name: "Form Builder", Icon: "clipboard", Route: "/administration/form-builder", DisplayOrder: 6},
		},
	},
	{
		Code: MenuOperations, Name: "Operations", Icon: "radar", Route: "/operations", DisplayOrder: 3,
		SubMenus: []SubMenuSeed{
			{Code: "Guards", Name: "Guards", Icon: "user-check", Route: "/operations/guards", DisplayOrder: 1},
			{Code: "Sites", Name: "Sites", Icon: "map-pin", Route: "/operations/sites", DisplayOrder: 2},
			{Code: "SiteAssignments", Name: "Site Assignments", Icon: "route", Route: "/operations/site-assignments", DisplayOrder: 3},
			{Code: "Attendance", Name: "Attendance", Icon: "calendar-check", Route: "/operations/attendance", DisplayOrder: 4},
			{Code: "Shifts", Name: "Shifts", Icon: "clock", Route: "/operations/shifts", DisplayOrder: 5},
			{Code: "Incidents", Name: "Incidents", Icon: "alert-triangle", Route: "/operations/incidents", DisplayOrder: 6},
			{Code: "VisitorLogs", Name: "Visitor Logs", Icon: "door-open", Route: "/operations/visitor-logs", DisplayOrder: 7},
			{Code: "VehicleLogs", Name: "Vehicle Logs", Icon: "truck", Route: "/operations/vehicle-logs", DisplayOrder: 8},
			{Code: "Patrols", Name: "Patrols", Icon: "footprints", Route: "/operations/patrols", DisplayOrder: 9},
			{Code: "Checkpoints", Name: "Checkpoints", Icon: "flag", Route: "/operations/checkpoints", DisplayOrder: 10},
		},
	},
	{
		Code: MenuFinance, Name: "Finance", Icon: "wallet", Route: "/finance", DisplayOrder: 4,
		SubMenus: []SubMenuSeed{
			{Code: "Bills", Name: "Bills", Icon: "receipt", Route: "/finance/bills", DisplayOrder: 1},
			{Code: "Wages", Name: "Wages", Icon: "banknote", Route: "/finance/wages", DisplayOrder: 2},
			{Code: "Payroll", Name: "Payroll", Icon: "calculator", Route: "/finance/payroll", DisplayOrder: 3},
			{Code: "Invoices", Name: "Invoices", Icon: "file-text", Route: "/finance/invoices", DisplayOrder: 4},
			{Code: "Expenses", Name: "Expenses", Icon: "trending-down", Route: "/finance/expenses", DisplayOrder: 5},
			{Code: "FinanceReports", Name: "Reports", Icon: "bar-chart", Route: "/finance/reports", DisplayOrder: 6},
		},
	},
	{
		Code: MenuHR, Name: "HR", Icon: "briefcase", Route: "/hr", DisplayOrder: 5,
		SubMenus: []SubMenuSeed{
			{Code: "TrainingRecords", Name: "Training Records", Icon: "graduation-cap", Route: "/hr/training-records", DisplayOrder: 1},
			{Code: "GuardDocuments", Name: "Guard Documents", Icon: "folder", Route: "/hr/guard-documents", DisplayOrder: 2},
			{Code: "LeaveRequests", Name: "Leave Requests", Icon: "calendar-off", Route: "/hr/leave-requests", DisplayOrder: 3},
		},
	},
	{
		Code: MenuMore, Name: "More", Icon: "more-horizontal", Route: "/more", DisplayOrder: 6,
		SubMenus: []SubMenuSeed{
			{Code: SubMenuCompanyProfile, Name: "Company Profile", Icon: "building-2", Route: "/more/company-profile", DisplayOrder: 1},
			{Code: "Notifications", Name: "Notifications", Icon: "bell", Route: "/more/notifications", DisplayOrder: 2},
			{Code: "Support", Name: "Support", Icon: "life-buoy", Route: "/more/support", DisplayOrder: 3},
			{Code: "Settings", Name: "Settings", Icon: "settings", Route: "/more/settings", DisplayOrder: 4},
			{Code: "About", Name: "About", Icon: "info", Route: "/more/about", DisplayOrder: 5},
		},
	},
}

// Grants maps role code to the navigation/permission policy applied during
// provisioning.
var Grants = map[string]RoleGrant{
	RoleAdmin: {
		AllPermissions: true,
		AllMenus:       true,
		AllSubMenus:    true,
	},
	RoleAccounts: {
		Menus:      []string{MenuDashboard, MenuFinance},
		SubMenusOf: []string{MenuFinance},
	},
	RoleGuard: {
		Menus:         []string{MenuDashboard, MenuOperations, MenuMore},
		SubMenusOf:    []string{MenuOperations},
		ExtraSubMenus: []string{SubMenuCompanyProfile},
	},
	RoleSupervisor: {
		Menus:         []string{MenuDashboard, MenuOperations, MenuHR, MenuMore},
		SubMenusOf:    []string{MenuOperations, MenuHR},
		ExtraSubMenus: []string{SubMenuCompanyProfile},
	},
}
