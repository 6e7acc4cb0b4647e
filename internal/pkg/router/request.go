package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/astra/internal/pkg/goerror"
)

const maxBodyBytes = 1 << 20

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	*http.Request
}

// GetParam reads a path parameter stored by httprouter.
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetQueryInt64 parses an optional integer query value. A missing value
// yields (0, false, nil).
func (r *Request) GetQueryInt64(key string) (int64, bool, error) {
	raw := r.GetQuery(key)
	if raw == "" {
		return 0, false, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, goerror.NewInvalidInput(nil, key, key+" must be an integer")
	}
	return v, true, nil
}

// GetQueryBool parses an optional boolean query value. Besides the strconv
// forms it accepts "yes" and "no".
func (r *Request) GetQueryBool(key string) (value, ok bool, err error) {
	raw := strings.ToLower(r.GetQuery(key))
	switch raw {
	case "":
		return false, false, nil
	case "yes":
		return true, true, nil
	case "no":
		return false, true, nil
	}

	v, perr := strconv.ParseBool(raw)
	if perr != nil {
		return false, false, goerror.NewInvalidInput(nil, key, key+" must be a boolean")
	}
	return v, true, nil
}

// DecodeBody decodes a single JSON document into dst. Unknown fields and
// trailing data are rejected. An empty body leaves dst untouched when
// allowEmpty is set.
func (r *Request) DecodeBody(dst any, allowEmpty ...bool) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && len(allowEmpty) > 0 && allowEmpty[0] {
			return nil
		}
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}
