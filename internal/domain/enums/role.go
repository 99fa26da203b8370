package enums

type Role string

const (
	RoleOwner     Role = "OWNER"
	RoleSupport   Role = "SUPPORT"
	RoleModerator Role = "MODERATOR"
)
