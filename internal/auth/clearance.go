package auth

import (
	"github.com/sce-foundation/sce-portal/internal"
	"github.com/sce-foundation/sce-portal/internal/user"
)

// ViewerClearance returns the effective clearance of a viewer. Anonymous
// viewers are clearance 0 everywhere; clearance-1 records require an account.
func ViewerClearance(viewer *internal.SessionUser) int {
	if viewer == nil {
		return 0
	}
	return viewer.ClearanceLevel
}

// HasClearance reports whether the viewer may see a record gated at the given
// clearance. Absent viewers are denied, never an error.
func HasClearance(viewer *internal.SessionUser, requiredClearance int) bool {
	return ViewerClearance(viewer) >= requiredClearance
}

func IsAdministrator(viewer *internal.SessionUser) bool {
	return viewer != nil && viewer.Role == string(user.RoleAdministrator)
}

// CanPublishPosts mirrors user.User.CanPublishPosts for context viewers.
func CanPublishPosts(viewer *internal.SessionUser) bool {
	if viewer == nil {
		return false
	}
	switch user.Role(viewer.Role) {
	case user.RoleAdministrator, user.RoleModerator, user.RoleResearcher:
		return true
	}
	return false
}
