package queries

// GetFlowQuery represents a query for the current flow table
type GetFlowQuery struct{}

// Validate validates the GetFlowQuery
func (q GetFlowQuery) Validate() error {
	return nil
}

// FlowWarning describes a suspicious derived edge
type FlowWarning struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GetFlowResult represents the derived flow table for one load
type GetFlowResult struct {
	Entry     string            `json:"entry"`
	Flow      map[string]string `json:"flow"`
	UserCards int               `json:"userCards"`
	Warnings  []FlowWarning     `json:"warnings,omitempty"`
}
