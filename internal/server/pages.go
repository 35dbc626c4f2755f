package server

import (
	"net/http"
)

func (s *Service) handleHome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Donation Matcher API is running!"))
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
}

func (s *Service) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}
