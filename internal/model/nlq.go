package model

// NLQRequest is the natural-language query payload. Limit is a pointer so
// an explicit 0 (clamped to 1) is distinguishable from an absent field
// (server default).
type NLQRequest struct {
	Query  string  `json:"query"`
	Locale *string `json:"locale,omitempty"`
	Limit  *int    `json:"limit,omitempty"`
	Estado *string `json:"estado,omitempty"`
}

// NLQResponse wraps a successful translation run. ToolPayload carries the
// matched items, ToolArgs the effective filter the run settled on.
type NLQResponse struct {
	Success     bool   `json:"success"`
	Answer      string `json:"answer"`
	ToolPayload any    `json:"toolPayload"`
	ToolArgs    any    `json:"toolArgs"`
	LatencyMS   int64  `json:"latency_ms"`
	TraceID     string `json:"trace_id"`
}

// NLQError is the only server-side error shape the API produces; every
// instance carries a trace id for correlation.
type NLQError struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	TraceID   string `json:"trace_id"`
}
