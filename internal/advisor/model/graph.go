package model

// AppState stores per-invocation state for the Eino graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers
//     (WithStatePreHandler/WithStatePostHandler), which Eino serializes,
//     so no additional mutex is required.
type AppState struct {
	SessionID string

	// Accumulated total LLM cost (USD) across model invocations for this query
	TotalCostUSD float64
}

// QueryInput represents the input for processing a user query.
type QueryInput struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}
