package enums

type PriceType string

const (
	PriceTypeFixed PriceType = "fixed"
	PriceTypeList  PriceType = "list"
	PriceTypeText  PriceType = "text"
)

type PriceUnit string

const (
	PriceUnitHour         PriceUnit = "hour"
	PriceUnitJob          PriceUnit = "job"
	PriceUnitConsultation PriceUnit = "consultation"
	PriceUnitDay          PriceUnit = "day"
	PriceUnitMonth        PriceUnit = "month"
)
