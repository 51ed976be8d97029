package scaling

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/evfleet/demometrics/core/opslog"
)

// NewOperationsHandler returns an HTTP handler exposing scaling history via
// GET /api/scaling/operations. Supported query parameters: since (RFC3339)
// and success (true|false).
func NewOperationsHandler(store opslog.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		f := opslog.Filter{}
		if s := r.URL.Query().Get("since"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				f.Since = t
			}
		}
		if s := r.URL.Query().Get("success"); s != "" {
			v := s == "true"
			f.Success = &v
		}
		ops := store.List(f)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ops); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
