package rules

import (
	"testing"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
)

func TestStatusForAction(t *testing.T) {
	tests := []struct {
		action enums.ModerationAction
		want   enums.UserStatus
	}{
		{action: enums.ModerationActionWarn, want: enums.UserStatusWarned},
		{action: enums.ModerationActionSuspend, want: enums.UserStatusSuspended},
		{action: enums.ModerationActionBan, want: enums.UserStatusBanned},
		{action: enums.ModerationActionKick, want: enums.UserStatusKicked},
		{action: enums.ModerationActionReactivate, want: enums.UserStatusActive},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			got, ok := StatusForAction(tt.action)
			if !ok {
				t.Fatalf("expected %s to be a known action", tt.action)
			}
			if got != tt.want {
				t.Fatalf("unexpected status for %s: got %s want %s", tt.action, got, tt.want)
			}
		})
	}
}

func TestUnknownActionRejected(t *testing.T) {
	if ValidAction("promote") {
		t.Fatal("promote must not be a valid moderation action")
	}
	if _, ok := StatusForAction(""); ok {
		t.Fatal("empty action must not resolve to a status")
	}
}

func TestReactivateOffered(t *testing.T) {
	if ReactivateOffered(enums.UserStatusActive) {
		t.Fatal("reactivate must not be offered for an active account")
	}
	for _, status := range []enums.UserStatus{
		enums.UserStatusWarned,
		enums.UserStatusSuspended,
		enums.UserStatusBanned,
		enums.UserStatusKicked,
	} {
		if !ReactivateOffered(status) {
			t.Fatalf("reactivate must be offered for status %s", status)
		}
	}
}
