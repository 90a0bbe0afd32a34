package request

type GeneratePrefacturaRequest struct {
	RequestIDs []string `json:"request_ids" binding:"required"`
}

type ApprovePrefacturaRequest struct {
	Resend bool `json:"resend"`
}

type SendPrefacturaRequest struct {
	Note string `json:"note"`
}

// ClientAnswerRequest carries the client's note on approval or the reason
// on rejection.
type ClientAnswerRequest struct {
	Note   string `json:"note"`
	Reason string `json:"reason"`
	Resend bool   `json:"resend"`
}
