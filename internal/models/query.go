package models

// QueryRequest carries one grounded question against a FileSearch store.
type QueryRequest struct {
	Question        string  `json:"question"`
	StoreName       string  `json:"storeName"`
	Temperature     float64 `json:"temperature"`     // 0.0 = strict grounding
	MaxOutputTokens int     `json:"maxOutputTokens"` // default 2048
}

// Citation references a retrieved passage backing an answer.
type Citation struct {
	Source  string `json:"source"`
	Preview string `json:"preview,omitempty"`
}

// QueryOutcome is the structured result of one grounded query.
// Invariant: when IsFound is false, Answer is empty and Citations is empty.
// When ErrorMessage is set, Answer and Citations are to be ignored.
type QueryOutcome struct {
	Answer         string     `json:"answer"`
	Citations      []Citation `json:"citations"`
	IsFound        bool       `json:"isFound"`
	ResponseTimeMs int64      `json:"responseTimeMs"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
}
