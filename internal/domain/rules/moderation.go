package rules

import "github.com/ivankudzin/svcmarket/internal/domain/enums"

// The action set is fixed, but transition legality is deliberately not
// checked against the current status: an admin may re-issue a ban from any
// state, and reactivate is accepted even for an already-active account.
var actionStatus = map[enums.ModerationAction]enums.UserStatus{
	enums.ModerationActionWarn:       enums.UserStatusWarned,
	enums.ModerationActionSuspend:    enums.UserStatusSuspended,
	enums.ModerationActionBan:        enums.UserStatusBanned,
	enums.ModerationActionKick:       enums.UserStatusKicked,
	enums.ModerationActionReactivate: enums.UserStatusActive,
}

func ValidAction(action enums.ModerationAction) bool {
	_, ok := actionStatus[action]
	return ok
}

func StatusForAction(action enums.ModerationAction) (enums.UserStatus, bool) {
	status, ok := actionStatus[action]
	return status, ok
}

// ReactivateOffered reports whether the reactivate action is meaningful for
// the given status. Calling reactivate on an active account stays allowed
// and idempotent; this only drives what the admin console should offer.
func ReactivateOffered(status enums.UserStatus) bool {
	return status != enums.UserStatusActive
}
