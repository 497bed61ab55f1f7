package entity

// Role is the authorization role attached to an authenticated identity.
// Privileged operations check capabilities against the role instead of
// comparing usernames, so more than one admin account can exist.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Capability names a privileged operation.
type Capability string

const (
	CapVerifyUsers   Capability = "verify_users"
	CapVerifyCenters Capability = "verify_centers"
	CapAwardPoints   Capability = "award_points"
	CapDeleteRecords Capability = "delete_records"
)

// Has reports whether the role grants the capability.
func (r Role) Has(c Capability) bool {
	switch r {
	case RoleAdmin:
		return true
	default:
		return false
	}
}
