package enums

type IdentifierType string

const (
	IdentifierTypeIP    IdentifierType = "ip"
	IdentifierTypeEmail IdentifierType = "email"
	IdentifierTypePhone IdentifierType = "phone"
)
