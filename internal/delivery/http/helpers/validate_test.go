package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nameRequest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func (r nameRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if r.Age < 0 {
		errs = append(errs, "age cannot be negative")
	}
	return errs
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantOK      bool
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{name: "valid", body: `{"name":"Ana","age":9}`, wantOK: true},
		{name: "trailing whitespace", body: "{\"name\":\"Ana\"}\n", wantOK: true},
		{
			name: "empty body", body: "",
			wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "request body is required",
		},
		{
			name: "malformed", body: `{invalid`,
			wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "invalid request body: malformed JSON",
		},
		{
			name: "wrong type", body: `{"name":"Ana","age":"nine"}`,
			wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "age must be int",
		},
		{
			name: "unknown field", body: `{"name":"Ana","grade":3}`,
			wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "unknown field",
		},
		{
			name: "two objects", body: `{"name":"Ana"}{"name":"Ben"}`,
			wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "single JSON object",
		},
		{
			name: "validation errors joined", body: `{"name":" ","age":-1}`,
			wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "name is required; age cannot be negative",
		},
		{
			name: "oversized", body: `{"name":"` + strings.Repeat("a", MaxJSONBodySize) + `"}`,
			wantStatus: http.StatusRequestEntityTooLarge, wantCode: ErrCodePayloadTooLarge, wantMessage: "exceeds",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			var req nameRequest
			ok := DecodeAndValidate(rr, r, &req)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "Ana", req.Name)
				return
			}
			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			assert.Contains(t, envelope.Error.Message, tt.wantMessage)
		})
	}
}
