package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/schoolhub/pix/brcode"
	"github.com/schoolhub/pix/store"
)

type codeResponse struct {
	Code    string `json:"code"`
	TxID    string `json:"txid"`
	Key     string `json:"key"`
	KeyKind string `json:"key_kind"`
	Amount  string `json:"amount,omitempty"`
}

// chargeFromQuery builds a charge from the request's query parameters.
// A missing txid is filled with the first 25 hex chars of a fresh UUID.
func chargeFromQuery(r *http.Request) (brcode.Charge, error) {
	q := r.URL.Query()

	var c brcode.Charge
	if v := q.Get("amount"); v != "" {
		amt, err := decimal.NewFromString(v)
		if err != nil {
			return c, fmt.Errorf("invalid amount %q", v)
		}
		c.Amount = amt
	}
	c.Description = q.Get("description")
	c.KeyOverride = q.Get("key")

	c.TxID = q.Get("txid")
	if c.TxID == "" {
		c.TxID = strings.ReplaceAll(uuid.NewString(), "-", "")[:25]
	}

	return c, nil
}

// encodeCharge runs the encoder and records the result in the charge log.
func (s *Server) encodeCharge(c brcode.Charge) (codeResponse, error) {
	code, err := s.Encoder.Encode(c)
	if err != nil {
		return codeResponse{}, err
	}

	key := s.Encoder.Merchant().Key
	if c.KeyOverride != "" {
		key = brcode.ClassifyKey(c.KeyOverride)
	}

	resp := codeResponse{
		Code:    code,
		TxID:    brcode.NormalizeTxID(c.TxID),
		Key:     key.Value,
		KeyKind: string(key.Kind),
	}
	if c.Amount.IsPositive() {
		resp.Amount = c.Amount.StringFixed(2)
	}

	if err := s.Store.SaveCharge(&store.Charge{
		TxID:         resp.TxID,
		Key:          resp.Key,
		KeyKind:      resp.KeyKind,
		Amount:       resp.Amount,
		Description:  brcode.NormalizeText(c.Description, 25),
		MerchantName: s.Encoder.Merchant().Name,
		Payload:      code,
		CreatedAt:    time.Now().Unix(),
	}); err != nil {
		// The code itself is fine; losing the log entry is not fatal.
		s.Log.Warn("record charge", "txid", resp.TxID, "error", err)
	}

	return resp, nil
}

func encodeStatus(err error) int {
	switch {
	case errors.Is(err, brcode.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, brcode.ErrFieldTooLong):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleCode(w http.ResponseWriter, r *http.Request) {
	c, err := chargeFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.encodeCharge(c)
	if err != nil {
		writeError(w, encodeStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCodeQR(w http.ResponseWriter, r *http.Request) {
	c, err := chargeFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.encodeCharge(c)
	if err != nil {
		writeError(w, encodeStatus(err), err.Error())
		return
	}

	size := queryInt(r, "size", s.QRSize)
	png, err := brcode.RenderPNG(resp.Code, size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
