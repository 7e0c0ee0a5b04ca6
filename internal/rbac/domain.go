// Package rbac holds the static role and permission model of the admin
// gateway. Roles form a closed enumeration and every lookup fails closed: an
// unknown role has no permissions and no navigable routes.
package rbac

import "fmt"

// Role is a coarse-grained access grouping for staff members.
type Role int

const (
	// RoleUnknown is the zero value and grants nothing.
	RoleUnknown Role = iota
	RoleAdmin
	RoleReception
	RoleOperations
)

var roleNames = map[Role]string{
	RoleAdmin:      "ADMIN",
	RoleReception:  "RECEPTION",
	RoleOperations: "OPERATIONS",
}

// String returns the canonical role name.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if _, ok := roleNames[r]; !ok {
		return nil, fmt.Errorf("rbac: cannot marshal unknown role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, failing closed.
func (r *Role) UnmarshalText(text []byte) error {
	*r = ParseRole(string(text))
	return nil
}

// ParseRole resolves a canonical role name. Anything unrecognised maps to
// RoleUnknown.
func ParseRole(name string) Role {
	switch name {
	case "ADMIN":
		return RoleAdmin
	case "RECEPTION":
		return RoleReception
	case "OPERATIONS":
		return RoleOperations
	default:
		return RoleUnknown
	}
}

// NormalizeRole maps the backend's free-form job titles (gorev) onto roles.
// Unmapped titles default to OPERATIONS, the least privileged role.
func NormalizeRole(gorev string) Role {
	switch gorev {
	case "Genel Müdür", "Yönetici":
		return RoleAdmin
	case "Resepsiyon Şefi", "Resepsiyonist":
		return RoleReception
	default:
		return RoleOperations
	}
}

// roleHierarchy lists which role levels each role may act as.
var roleHierarchy = map[Role][]Role{
	RoleAdmin:      {RoleAdmin, RoleReception, RoleOperations},
	RoleReception:  {RoleReception, RoleOperations},
	RoleOperations: {RoleOperations},
}

// CanAccessRole reports whether userRole covers the required role level.
func CanAccessRole(userRole, required Role) bool {
	for _, r := range roleHierarchy[userRole] {
		if r == required {
			return true
		}
	}
	return false
}

// Permission is a fine-grained capability tag. The tag values mirror the
// backend's permission identifiers so the two tables remain comparable.
type Permission string

const (
	PermStaffRead   Permission = "personel_read"
	PermStaffWrite  Permission = "personel_write"
	PermStaffDelete Permission = "personel_delete"

	PermCustomersRead   Permission = "musteriler_read"
	PermCustomersWrite  Permission = "musteriler_write"
	PermCustomersDelete Permission = "musteriler_delete"

	PermRoomsRead   Permission = "odalar_read"
	PermRoomsWrite  Permission = "odalar_write"
	PermRoomsDelete Permission = "odalar_delete"

	PermReservationsRead   Permission = "rezervasyonlar_read"
	PermReservationsWrite  Permission = "rezervasyonlar_write"
	PermReservationsDelete Permission = "rezervasyonlar_delete"

	PermPaymentsRead   Permission = "odemeler_read"
	PermPaymentsWrite  Permission = "odemeler_write"
	PermPaymentsDelete Permission = "odemeler_delete"

	PermServicesRead         Permission = "ekstra_hizmetler_read"
	PermServicesWrite        Permission = "ekstra_hizmetler_write"
	PermServicesDelete       Permission = "ekstra_hizmetler_delete"
	PermServicesStatusUpdate Permission = "ekstra_hizmetler_status_update"

	PermStockRead         Permission = "depo_stok_read"
	PermStockWrite        Permission = "depo_stok_write"
	PermStockDelete       Permission = "depo_stok_delete"
	PermStockAmountUpdate Permission = "depo_stok_amount_update"

	PermReviewsRead  Permission = "musteri_degerlendirme_read"
	PermReviewsWrite Permission = "musteri_degerlendirme_write"

	PermExpensesRead Permission = "musteri_harcamalari_read"

	PermReportsRead   Permission = "reports_read"
	PermDashboardRead Permission = "dashboard_read"
)

// permissionTable maps each permission onto its allowed role set. Immutable
// after process start.
var permissionTable = map[Permission][]Role{
	PermStaffRead:   {RoleAdmin},
	PermStaffWrite:  {RoleAdmin},
	PermStaffDelete: {RoleAdmin},

	PermCustomersRead:   {RoleAdmin, RoleReception},
	PermCustomersWrite:  {RoleAdmin, RoleReception},
	PermCustomersDelete: {RoleAdmin},

	PermRoomsRead:   {RoleAdmin, RoleReception},
	PermRoomsWrite:  {RoleAdmin},
	PermRoomsDelete: {RoleAdmin},

	PermReservationsRead:   {RoleAdmin, RoleReception},
	PermReservationsWrite:  {RoleAdmin, RoleReception},
	PermReservationsDelete: {RoleAdmin},

	PermPaymentsRead:   {RoleAdmin},
	PermPaymentsWrite:  {RoleAdmin},
	PermPaymentsDelete: {RoleAdmin},

	PermServicesRead:         {RoleAdmin, RoleReception},
	PermServicesWrite:        {RoleAdmin},
	PermServicesDelete:       {RoleAdmin},
	PermServicesStatusUpdate: {RoleAdmin, RoleOperations},

	PermStockRead:         {RoleAdmin, RoleOperations},
	PermStockWrite:        {RoleAdmin, RoleOperations},
	PermStockDelete:       {RoleAdmin},
	PermStockAmountUpdate: {RoleAdmin, RoleOperations},

	PermReviewsRead:  {RoleAdmin, RoleReception},
	PermReviewsWrite: {RoleAdmin, RoleReception},

	PermExpensesRead: {RoleAdmin},

	PermReportsRead:   {RoleAdmin},
	PermDashboardRead: {RoleAdmin, RoleReception, RoleOperations},
}

// HasPermission reports whether the role holds the permission. Unknown roles
// and unknown permissions both yield false.
func HasPermission(role Role, perm Permission) bool {
	for _, allowed := range permissionTable[perm] {
		if allowed == role {
			return true
		}
	}
	return false
}

// PermissionsFor returns the role's permission tags in table-definition order.
func PermissionsFor(role Role) []Permission {
	perms := make([]Permission, 0, len(permissionOrder))
	for _, perm := range permissionOrder {
		if HasPermission(role, perm) {
			perms = append(perms, perm)
		}
	}
	return perms
}

// permissionOrder keeps PermissionsFor deterministic.
var permissionOrder = []Permission{
	PermStaffRead, PermStaffWrite, PermStaffDelete,
	PermCustomersRead, PermCustomersWrite, PermCustomersDelete,
	PermRoomsRead, PermRoomsWrite, PermRoomsDelete,
	PermReservationsRead, PermReservationsWrite, PermReservationsDelete,
	PermPaymentsRead, PermPaymentsWrite, PermPaymentsDelete,
	PermServicesRead, PermServicesWrite, PermServicesDelete, PermServicesStatusUpdate,
	PermStockRead, PermStockWrite, PermStockDelete, PermStockAmountUpdate,
	PermReviewsRead, PermReviewsWrite,
	PermExpensesRead,
	PermReportsRead, PermDashboardRead,
}
