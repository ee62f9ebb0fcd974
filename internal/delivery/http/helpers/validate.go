package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxJSONBodySize caps JSON request bodies. File uploads go through
// multipart parsing and have their own limits.
const MaxJSONBodySize = 1 << 20

// Validator is implemented by request DTOs that check their own fields.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate reads a single JSON object from the body into dest and
// runs dest's Validate when it has one. Unknown fields and trailing data are
// rejected. On failure it writes a 400 (413 for oversized bodies) and
// returns false; callers return right away in that case.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dest); err != nil {
		writeDecodeError(w, err)
		return false
	}
	if dec.More() {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: expected a single JSON object")
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var (
		maxErr    *http.MaxBytesError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &maxErr):
		WriteJSONError(w, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
	case errors.Is(err, io.EOF):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "request body is required")
	case errors.As(err, &syntaxErr):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest,
			fmt.Sprintf("invalid request body: malformed JSON at offset %d", syntaxErr.Offset))
	case errors.As(err, &typeErr) && typeErr.Field != "":
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest,
			fmt.Sprintf("invalid request body: %s must be %s", typeErr.Field, typeErr.Type))
	default:
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body: "+err.Error())
	}
}
