package types

// Permission represents the notification permission lifecycle.
// Unrequested is the only state from which a prompt may be initiated;
// once Granted or Denied the decision is final for the process lifetime.
type Permission string

const (
	PermissionUnrequested Permission = "unrequested"
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
)

// IsValid checks if the permission state is valid
func (p Permission) IsValid() bool {
	switch p {
	case PermissionUnrequested, PermissionGranted, PermissionDenied:
		return true
	default:
		return false
	}
}

// Decided reports whether a permission prompt has already been answered
func (p Permission) Decided() bool {
	return p == PermissionGranted || p == PermissionDenied
}

// String returns the string representation of the permission state
func (p Permission) String() string {
	return string(p)
}
