package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/gw-transaction-records/internal/models"
)

// reservedKeys are owned by the record itself and dropped from request bodies.
var reservedKeys = []string{"id", "created_at", "updated_at", models.ClassKey}

var (
	errEmptyBody    = errors.New("request body must be a JSON object")
	errTrailingData = errors.New("request body must contain a single JSON object")
)

// decodeAttrs reads a JSON object of attribute overrides from the request body.
// Numbers are kept as json.Number so amounts keep their precision.
func decodeAttrs(r *http.Request) (models.Attrs, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r.Body); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return models.Attrs{}, nil
	}

	dec := json.NewDecoder(&buf)
	dec.UseNumber()

	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil {
		return nil, err
	}
	if attrs == nil {
		return nil, errEmptyBody
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errTrailingData
	}

	for _, k := range reservedKeys {
		delete(attrs, k)
	}
	return models.Attrs(attrs), nil
}

// parseFilter reads user_id, employer_id and reviewed from the query string.
func parseFilter(r *http.Request) (models.TransactionFilter, error) {
	var filter models.TransactionFilter
	q := r.URL.Query()

	if v := q.Get("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid user_id: %q", v)
		}
		filter.UserID = &id
	}
	if v := q.Get("employer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid employer_id: %q", v)
		}
		filter.EmployerID = &id
	}
	if v := q.Get("reviewed"); v != "" {
		reviewed, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("invalid reviewed: %q", v)
		}
		filter.Reviewed = &reviewed
	}
	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.TransactionErrorResponse{Error: msg})
}
