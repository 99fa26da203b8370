package enums

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusWarned    UserStatus = "warned"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
	UserStatusKicked    UserStatus = "kicked"
)
