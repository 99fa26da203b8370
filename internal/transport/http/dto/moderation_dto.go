package dto

import "github.com/ivankudzin/svcmarket/internal/domain/model"

type ModerateRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
	IP     string `json:"ip,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

type ModerateResponse struct {
	User   model.User             `json:"user"`
	Record model.ModerationRecord `json:"record"`
}

type ModerationHistoryResponse struct {
	Records []model.ModerationRecord `json:"records"`
}

type BannedIdentifiersResponse struct {
	Identifiers []model.BannedIdentifier `json:"identifiers"`
}

type BannedIdentifierRequest struct {
	IdentifierType  string `json:"identifier_type"`
	IdentifierValue string `json:"identifier_value"`
	Reason          string `json:"reason"`
}

type BannedIdentifierResponse struct {
	Identifier model.BannedIdentifier `json:"identifier"`
}
