package helpers

import (
	"net/http"

	"github.com/google/uuid"
)

// PathID reads the named path value and checks that it is a UUID. On failure it
// writes a 400 JSON error and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid "+name)
		return "", false
	}
	return id.String(), true
}
