package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"donormatch/pkg/types"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

// writeError maps validation failures to 400 and everything else to 500.
// Internal details are logged, never returned.
func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Fields: verr.Fields,
		})
		return
	}

	s.logger.WithError(err).WithField("request_id", requestIDFromContext(r.Context())).Error(msg)
	s.internalServerError(w)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
