package api

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status  string `json:"status"`
	KeyKind string `json:"key_kind"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(s.StartTime).Truncate(time.Second).String()

	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		KeyKind: string(s.Encoder.Merchant().Key.Kind),
		Uptime:  uptime,
		Version: s.Version,
	})
}
