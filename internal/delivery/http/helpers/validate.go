package helpers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// maxBodyBytes caps request bodies; every endpoint here carries small JSON.
const maxBodyBytes = 1 << 20

// Validator is implemented by request DTOs that carry their own field rules.
// Validate returns one message per violated rule; empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate reads the JSON request body into dest, rejecting unknown
// fields, then runs dest's Validate rules when it has any. On failure it
// writes the 400 response itself and returns false, so callers just return.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
		return false
	}
	v, ok := dest.(Validator)
	if !ok {
		return true
	}
	if errs := v.Validate(); len(errs) > 0 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
		return false
	}
	return true
}
