package domain

// NormalizedResult is a provider row that survived normalization.
// Immutable once created; URLKey uniquely identifies it within one run.
type NormalizedResult struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Snippet    string `json:"snippet"`
	Domain     string `json:"domain"`
	IsPriority bool   `json:"is_priority"`
	Score      int    `json:"score"`
	URLKey     string `json:"-"`
}

// PipelineMetadata describes how one pipeline run spent its budget.
type PipelineMetadata struct {
	FallbackUsed            bool   `json:"fallback_used"`
	PriorityResultCount     int    `json:"priority_result_count"`
	TotalResultCount        int    `json:"total_result_count"`
	CostMode                string `json:"cost_mode"`
	ProviderRequestCount    int    `json:"provider_request_count"`
	ProviderRequestLimit    int    `json:"provider_request_limit"`
	ProviderBudgetExhausted bool   `json:"provider_budget_exhausted"`
}

// PipelineResult is the output of one pipeline run.
type PipelineResult struct {
	Results  []NormalizedResult `json:"results"`
	Metadata PipelineMetadata   `json:"metadata"`
}

// SearchReport is the escalation controller's output: the winning run
// plus combined call accounting across both runs when a standard-mode
// rerun was attempted.
type SearchReport struct {
	Results  []NormalizedResult `json:"results"`
	Metadata PipelineMetadata   `json:"metadata"`

	Escalated        bool   `json:"escalated"`
	EscalationReason string `json:"escalation_reason,omitempty"`
	QualityScore     int    `json:"quality_score"`
}
