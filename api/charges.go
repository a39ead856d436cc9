package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schoolhub/pix/store"
)

func (s *Server) handleListCharges(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	charges, err := s.Store.ListCharges(limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if charges == nil {
		charges = []store.Charge{}
	}

	writeJSON(w, http.StatusOK, charges)
}

func (s *Server) handleSearchCharges(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	limit := queryInt(r, "limit", 20)

	charges, err := s.Store.SearchCharges(q, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if charges == nil {
		charges = []store.Charge{}
	}

	writeJSON(w, http.StatusOK, charges)
}

func (s *Server) handleGetCharge(w http.ResponseWriter, r *http.Request) {
	txid := chi.URLParam(r, "txid")
	if txid == "" {
		writeError(w, http.StatusBadRequest, "txid path parameter is required")
		return
	}

	charge, err := s.Store.GetCharge(txid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "charge not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, charge)
}
