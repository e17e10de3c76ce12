package timezones

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const defaultResultLimit = 50

type optionPayload struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type responsePayload struct {
	Options []optionPayload `json:"options"`
}

// Handler returns a net/http handler answering GET and HEAD requests with a
// JSON option list. It accepts query and limit parameters, e.g.
// /options/timezones?query=america&limit=10.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		zones, err := Zones()
		if err != nil {
			http.Error(w, "timezone catalog unavailable", http.StatusInternalServerError)
			return
		}

		limit := defaultResultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			if parsed > 0 {
				limit = parsed
			}
		}

		results := Search(zones, r.URL.Query().Get("query"), limit)
		payload := responsePayload{Options: make([]optionPayload, 0, len(results))}
		for _, zone := range results {
			payload.Options = append(payload.Options, optionPayload{Value: zone, Label: zone})
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Method == http.MethodHead {
			return
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			http.Error(w, "encode response", http.StatusInternalServerError)
		}
	})
}
