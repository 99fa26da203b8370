package enums

type ModerationAction string

const (
	ModerationActionWarn       ModerationAction = "warn"
	ModerationActionSuspend    ModerationAction = "suspend"
	ModerationActionBan        ModerationAction = "ban"
	ModerationActionKick       ModerationAction = "kick"
	ModerationActionReactivate ModerationAction = "reactivate"
)
