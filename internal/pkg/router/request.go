package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/otpentry/internal/pkg/goerror"
)

// maxBodyBytes caps JSON request bodies. Every request in this API is a few
// short fields.
const maxBodyBytes = 64 << 10

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	*http.Request
}

// GetParam reads a path parameter stored by httprouter.
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// DecodeBody decodes exactly one JSON object into dst. Unknown fields and
// trailing data are rejected.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}
	return decodeJSON(r.Body, dst, false)
}

// DecodeOptionalBody is DecodeBody for endpoints whose body may be omitted.
// An empty body leaves dst untouched.
func (r *Request) DecodeOptionalBody(dst any) error {
	if r == nil || r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return decodeJSON(r.Body, dst, true)
}

func decodeJSON(body io.Reader, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}
