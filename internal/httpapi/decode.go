package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"filmorate/internal/domain"
)

// decodeJSON reads a single JSON value into dst. Unknown fields are ignored;
// clients send derived fields such as like counts back with updates.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		return badJSON(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return badJSON(errors.New("multiple json values"))
		}
		return badJSON(err)
	}
	return nil
}

func badJSON(err error) error {
	return domain.NewValidationError(map[string]string{"body": "invalid json: " + err.Error()})
}

// pathID parses a numeric path parameter. Unknown but well-formed ids are
// left for the store to reject as not found.
func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(map[string]string{name: fmt.Sprintf("must be an integer, got %q", raw)})
	}
	return id, nil
}

func pathIDs(r *http.Request, first, second string) (int64, int64, error) {
	a, err := pathID(r, first)
	if err != nil {
		return 0, 0, err
	}
	b, err := pathID(r, second)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
