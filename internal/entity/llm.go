package entity

// GenerationRequest is one call to the external text generator
type GenerationRequest struct {
	Instructions     string
	Input            string
	Temperature      float64
	MaxTokens        int64
	PresencePenalty  float64
	FrequencyPenalty float64
	// Schema requests a structured JSON reply when set
	Schema *ResponseSchema
}

type ResponseSchema struct {
	Name        string
	Description string
	Schema      any
}

type ASRTranscribeResponse struct {
	Text string `json:"text"`
}

type MailContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type MailMessage struct {
	Sender      MailContact   `json:"sender"`
	To          []MailContact `json:"to"`
	Subject     string        `json:"subject"`
	HTMLContent string        `json:"htmlContent"`
}

type MailSendResponse struct {
	MessageID string `json:"messageId"`
}
