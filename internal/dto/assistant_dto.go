package dto

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Mode     string        `json:"mode"`
	RAG      bool          `json:"rag"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type CVResponse struct {
	Markdown string `json:"markdown"`
	Title    string `json:"title"`
}

// PaymentRequiredResponse is the 402 payload carrying advertised prices.
type PaymentRequiredResponse struct {
	Error           bool    `json:"error"`
	Message         string  `json:"message"`
	RequiresPayment bool    `json:"requires_payment"`
	Prices          Prices  `json:"prices"`
}

type Prices struct {
	SingleDownload float64 `json:"single_download"`
	Premium        float64 `json:"premium"`
}

type AccessResponse struct {
	HasAccess          bool   `json:"has_access"`
	SubscriptionStatus string `json:"subscription_status"`
	Prices             Prices `json:"prices"`
}
