package request

import (
	"testing"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScanRequest_Lenient(t *testing.T) {
	tests := []struct {
		name string
		body string
		want security.ScanRequest
	}{
		{
			name: "all strings",
			body: `{"title":"t","description":"d","code":"eval(x)","language":"javascript"}`,
			want: security.ScanRequest{Title: "t", Description: "d", Code: "eval(x)", Language: "javascript"},
		},
		{
			name: "non-string code reads as empty",
			body: `{"title":"t","code":{"payload":"eval(x)"},"language":42}`,
			want: security.ScanRequest{Title: "t"},
		},
		{
			name: "array code reads as empty",
			body: `{"code":["eval(x)"]}`,
			want: security.ScanRequest{},
		},
		{
			name: "missing fields",
			body: `{}`,
			want: security.ScanRequest{},
		},
		{
			name: "escapes are decoded",
			body: `{"code":"alert(\"hi\")\n"}`,
			want: security.ScanRequest{Code: "alert(\"hi\")\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScanRequest([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScanRequest_RejectsNonObjects(t *testing.T) {
	for _, body := range []string{``, `not json`, `[1,2]`, `"code"`} {
		_, err := ParseScanRequest([]byte(body))
		assert.ErrorIs(t, err, ErrInvalidBody, body)
	}
}

func TestParseCreateSnippetRequest_Override(t *testing.T) {
	req, err := ParseCreateSnippetRequest([]byte(`{"title":"t","code":"x","override":true}`))
	require.NoError(t, err)
	assert.True(t, req.Override)

	req, err = ParseCreateSnippetRequest([]byte(`{"title":"t","code":"x","override":"true"}`))
	require.NoError(t, err)
	assert.False(t, req.Override)
}

func TestParseBatchCheckRequest(t *testing.T) {
	req, err := ParseBatchCheckRequest([]byte(`{"requests":[{"code":"a"},{"code":7},{"title":"b"}]}`))
	require.NoError(t, err)
	require.Len(t, req.Requests, 3)
	assert.Equal(t, "a", req.Requests[0].Code)
	assert.Equal(t, "", req.Requests[1].Code)
	assert.Equal(t, "b", req.Requests[2].Title)

	_, err = ParseBatchCheckRequest([]byte(`{"requests":{}}`))
	assert.Error(t, err)
}

func TestParseRateLimitCheckRequest(t *testing.T) {
	req, err := ParseRateLimitCheckRequest([]byte(`{"key":"user:1","is_authenticated":true}`))
	require.NoError(t, err)
	assert.Equal(t, RateLimitCheckRequest{Key: "user:1", IsAuthenticated: true}, req)

	_, err = ParseRateLimitCheckRequest([]byte(`{"is_authenticated":true}`))
	assert.Error(t, err)
}
