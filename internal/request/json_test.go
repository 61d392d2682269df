package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Photo []byte `json:"photo"`
}

func decode(t *testing.T, body string, limit int64) (payload, error) {
	t.Helper()

	var dst payload
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	err := DecodeJSONStrictLimit(w, r, &dst, limit)
	return dst, err
}

func TestDecodeJSONStrict(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		got, err := decode(t, `{"name":"Maria","photo":"AQID"}`, DefaultMaxBytes)
		require.NoError(t, err)
		assert.Equal(t, "Maria", got.Name)
		assert.Equal(t, []byte{1, 2, 3}, got.Photo)
	})

	tests := []struct {
		name    string
		body    string
		limit   int64
		wantErr string
	}{
		{name: "empty body", body: "", limit: DefaultMaxBytes, wantErr: "body must not be empty"},
		{name: "unknown field", body: `{"nome":"x"}`, limit: DefaultMaxBytes, wantErr: `body contains unknown key "nome"`},
		{name: "wrong type", body: `{"name":1}`, limit: DefaultMaxBytes, wantErr: `incorrect JSON type for field "name"`},
		{name: "two values", body: `{"name":"a"}{"name":"b"}`, limit: DefaultMaxBytes, wantErr: "single JSON value"},
		{name: "too large", body: `{"name":"` + strings.Repeat("a", 64) + `"}`, limit: 16, wantErr: "must not be larger than 16 bytes"},
		{name: "truncated", body: `{"name":"a"`, limit: DefaultMaxBytes, wantErr: "badly-formed JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(t, tt.body, tt.limit)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
