package routing

// TransportProfile is the mode of transportation a route is planned for.
// It changes both what the routing provider computes and how this package
// chooses between alternatives.
type TransportProfile string

const (
	ProfileDriving TransportProfile = "driving"
	ProfileWalking TransportProfile = "walking"
	ProfileCycling TransportProfile = "cycling"
)

// ParseProfile normalizes a caller-supplied profile tag. Unrecognized values
// fall back to driving; this is a documented default, not an error.
func ParseProfile(s string) TransportProfile {
	switch TransportProfile(s) {
	case ProfileDriving, ProfileWalking, ProfileCycling:
		return TransportProfile(s)
	default:
		return ProfileDriving
	}
}

// String returns the string representation of the profile.
func (p TransportProfile) String() string {
	return string(p)
}
