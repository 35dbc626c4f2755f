package server

import (
	"context"
	"net/http"

	"donormatch/pkg/types"

	"github.com/sirupsen/logrus"
)

func (s *Service) handleCreateVictim(w http.ResponseWriter, r *http.Request) {
	var fields types.VictimFields
	if err := decodeRecord(w, r, &fields); err != nil {
		s.writeError(w, r, err, "failed to decode victim")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	victim, err := s.records.AddVictim(ctx, fields)
	if err != nil {
		s.writeError(w, r, err, "failed to add victim")
		return
	}

	s.metrics.recordsCreated.WithLabelValues("victim").Inc()
	s.writeJSON(w, http.StatusCreated, victim)
}

func (s *Service) handleListVictims(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	victims, err := s.records.ListVictims(ctx)
	if err != nil {
		s.writeError(w, r, err, "failed to list victims")
		return
	}

	s.writeJSON(w, http.StatusOK, victims)
}

func (s *Service) handleCreateDonor(w http.ResponseWriter, r *http.Request) {
	var fields types.DonorFields
	if err := decodeRecord(w, r, &fields); err != nil {
		s.writeError(w, r, err, "failed to decode donor")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	donor, err := s.records.AddDonor(ctx, fields)
	if err != nil {
		s.writeError(w, r, err, "failed to add donor")
		return
	}

	s.metrics.recordsCreated.WithLabelValues("donor").Inc()
	s.writeJSON(w, http.StatusCreated, donor)
}

func (s *Service) handleListDonors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	donors, err := s.records.ListDonors(ctx)
	if err != nil {
		s.writeError(w, r, err, "failed to list donors")
		return
	}

	s.writeJSON(w, http.StatusOK, donors)
}

func (s *Service) handleMatches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	snap, err := s.records.Snapshot(ctx)
	if err != nil {
		s.writeError(w, r, err, "failed to snapshot store for matching")
		return
	}

	matches := s.matcher.Match(snap.Victims, snap.Donors)

	s.metrics.matchRuns.Inc()
	s.metrics.matchesFound.Observe(float64(len(matches)))

	s.logger.WithFields(logrus.Fields{
		"victims":    len(snap.Victims),
		"donors":     len(snap.Donors),
		"matches":    len(matches),
		"request_id": requestIDFromContext(ctx),
	}).Debug("computed matches")

	s.writeJSON(w, http.StatusOK, matches)
}

type resetResponse struct {
	OK bool `json:"ok"`
}

func (s *Service) handleReset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*requestTimeout)
	defer cancel()

	if err := s.records.Reset(ctx, s.resetHook); err != nil {
		s.writeError(w, r, err, "failed to reset store")
		return
	}

	s.metrics.resets.Inc()
	s.logger.WithField("request_id", requestIDFromContext(ctx)).Warn("store reset")

	s.writeJSON(w, http.StatusOK, resetResponse{OK: true})
}
