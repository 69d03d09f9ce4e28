package views

import "github.com/lalith-99/fixit/internal/models"

// Screen is the top-level view a user is routed to.
type Screen string

const (
	ScreenLoading  Screen = "loading"
	ScreenAuth     Screen = "auth"
	ScreenTenant   Screen = "tenant"
	ScreenLandlord Screen = "landlord"
)

// Route picks the screen for the current identity state. The checks run
// in order: loading, then signed-out, then role. Any role other than
// landlord gets the tenant screen.
func Route(identity *models.Caller, profile *models.Profile, loading bool) Screen {
	if loading {
		return ScreenLoading
	}
	if identity == nil || profile == nil {
		return ScreenAuth
	}
	if profile.Role == models.RoleLandlord {
		return ScreenLandlord
	}
	return ScreenTenant
}
