package domain

// Capability names a permission checked by the authorization gate.
// The only capability today is admin; there is no role hierarchy.
type Capability string

const CapabilityAdmin Capability = "admin"

// Authorize reports whether the given profile role grants a capability.
// The empty role (unauthenticated) and unknown capabilities always deny.
func Authorize(role string, capability Capability) bool {
	switch capability {
	case CapabilityAdmin:
		return role == RoleAdmin
	default:
		return false
	}
}
