package domain

// Role represents the authenticated user's role supplied by the identity provider
type Role string

const (
	RoleUser          Role = "user"
	RoleFacilityOwner Role = "facility_owner"
	RoleAdmin         Role = "admin"
)

// Valid проверяет, что роль известна системе
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleFacilityOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanManageVenue returns true if a user with this role may act on reservations
// of a venue they do not own personally: admins always, facility owners only
// for their own venue. Evaluated once at the service boundary.
func (r Role) CanManageVenue(userID, venueOwnerID int64) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleFacilityOwner:
		return userID == venueOwnerID
	default:
		return false
	}
}
