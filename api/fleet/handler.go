package fleet

import (
	"encoding/json"
	"net/http"

	"github.com/evfleet/demometrics/core/fleetstate"
)

// NewSummaryHandler returns an HTTP handler exposing the latest fleet
// snapshot via GET /api/fleet/summary.
func NewSummaryHandler(store *fleetstate.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sn, ok := store.Latest()
		if !ok {
			http.Error(w, "no snapshot available", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sn); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
