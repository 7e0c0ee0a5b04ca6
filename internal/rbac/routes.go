package rbac

// NavRoute describes one navigable admin page for the sidebar.
type NavRoute struct {
	Path  string     `json:"path"`
	Label string     `json:"label"`
	Icon  string     `json:"icon"`
	Perm  Permission `json:"-"`
}

// navRoutes is the ordered master list of admin pages. Visibility follows the
// permission table, so the sidebar and the route guards can never disagree.
var navRoutes = []NavRoute{
	{Path: "/dashboard", Label: "Ana Sayfa", Icon: "home", Perm: PermDashboardRead},
	{Path: "/rooms", Label: "Odalar", Icon: "door", Perm: PermRoomsRead},
	{Path: "/customers", Label: "Müşteriler", Icon: "users", Perm: PermCustomersRead},
	{Path: "/reservations", Label: "Rezervasyonlar", Icon: "calendar", Perm: PermReservationsRead},
	{Path: "/staff", Label: "Personel", Icon: "badge", Perm: PermStaffRead},
	{Path: "/stock", Label: "Depo & Stok", Icon: "box", Perm: PermStockRead},
	{Path: "/services", Label: "Ekstra Hizmetler", Icon: "bell", Perm: PermServicesRead},
	{Path: "/payments", Label: "Ödemeler", Icon: "credit-card", Perm: PermPaymentsRead},
	{Path: "/reports", Label: "Raporlar", Icon: "chart", Perm: PermReportsRead},
}

// NavRoutesFor returns the ordered routes the role may navigate to. Unknown
// roles get an empty list.
func NavRoutesFor(role Role) []NavRoute {
	routes := make([]NavRoute, 0, len(navRoutes))
	for _, route := range navRoutes {
		if HasPermission(role, route.Perm) {
			routes = append(routes, route)
		}
	}
	return routes
}

// IsRouteVisible reports whether the role may navigate to the path.
func IsRouteVisible(role Role, path string) bool {
	for _, route := range NavRoutesFor(role) {
		if route.Path == path {
			return true
		}
	}
	return false
}
