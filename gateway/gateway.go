package gateway

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

// Gateway is the GraphQL HTTP handler. It plans each request against the
// current engine and executes the plan against the subgraphs.
type Gateway struct {
	store *Store
}

var _ http.Handler = (*Gateway)(nil)

// NewGateway creates a handler over an engine store.
func NewGateway(store *Store) *Gateway {
	return &Gateway{store: store}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		writeErrors(w, "invalid request body")
		return
	}
	if req.Query == "" {
		w.WriteHeader(http.StatusBadRequest)
		writeErrors(w, "missing query")
		return
	}

	engine := g.store.Load()
	data, err := engine.Execute(r.Context(), req.Query, req.Variables)
	if err != nil {
		slog.Error("execution failed", "error", err)
		writeErrors(w, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"data": data}); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeErrors(w http.ResponseWriter, messages ...string) {
	errors := make([]map[string]any, 0, len(messages))
	for _, message := range messages {
		errors = append(errors, map[string]any{"message": message})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"errors": errors})
}
