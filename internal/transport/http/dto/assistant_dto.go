package dto

type AssistantMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AssistantRequest struct {
	Query               string             `json:"query"`
	ConversationHistory []AssistantMessage `json:"conversation_history,omitempty"`
}

type AssistantResponse struct {
	Response string `json:"response"`
}
