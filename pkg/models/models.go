package models

// AlertRequest is the body of POST /alert.
type AlertRequest struct {
	Player    string  `json:"player"`
	Prop      string  `json:"prop"`
	Line      float64 `json:"line"`
	RiskScore float64 `json:"risk_score"`
}

// ErrorResponse is the standard error envelope for API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
