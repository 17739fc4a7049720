package feature

import "github.com/devais/enclosure/pkg/profile"

// stadiumProfile is a rounded rectangle used for connector cutouts and
// the push-to-talk opening.
func stadiumProfile(name string, w, h, r float64) (profile.Profile, error) {
	return profile.RoundedRect(name, w, h, r)
}

// rectProfile is a sharp-cornered rectangle, used for internal pockets
// where corner rounding buys nothing.
func rectProfile(name string, w, h float64) (profile.Profile, error) {
	return profile.RoundedRect(name, w, h, 0)
}
