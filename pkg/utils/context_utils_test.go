package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headers(h map[string]string) func(string) string {
	return func(name string) string { return h[name] }
}

func TestResolveIdentity(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    Identity
	}{
		{
			name:    "user header wins",
			headers: map[string]string{"X-User-ID": "42", "X-Real-IP": "10.0.0.1"},
			want:    Identity{Key: "user:42", Authenticated: true},
		},
		{
			name:    "real ip",
			headers: map[string]string{"X-Real-IP": "10.0.0.1"},
			remote:  "192.168.1.1:5000",
			want:    Identity{Key: "ip:10.0.0.1"},
		},
		{
			name:    "first forwarded address",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			want:    Identity{Key: "ip:203.0.113.7"},
		},
		{
			name:    "cloudflare",
			headers: map[string]string{"CF-Connecting-IP": "198.51.100.3"},
			want:    Identity{Key: "ip:198.51.100.3"},
		},
		{
			name:   "socket address",
			remote: "192.168.1.1:5000",
			want:   Identity{Key: "ip:192.168.1.1"},
		},
		{
			name:    "blank user header is anonymous",
			headers: map[string]string{"X-User-ID": "  "},
			remote:  "192.168.1.1",
			want:    Identity{Key: "ip:192.168.1.1"},
		},
		{
			name: "nothing known",
			want: Identity{Key: "ip:unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveIdentity(headers(tt.headers), tt.remote))
		})
	}
}

func TestIdentityResolver(t *testing.T) {
	resolver, err := NewIdentityResolver([]string{"10.0.0.0/8", "192.168.1.10"})
	require.NoError(t, err)
	assert.False(t, resolver.TrustsAll())

	spoofed := headers(map[string]string{"X-User-ID": "alice", "X-Forwarded-For": "203.0.113.7"})

	tests := []struct {
		name   string
		remote string
		want   Identity
	}{
		{name: "trusted network", remote: "10.1.2.3:4000", want: Identity{Key: "user:alice", Authenticated: true}},
		{name: "trusted address", remote: "192.168.1.10:4000", want: Identity{Key: "user:alice", Authenticated: true}},
		{name: "untrusted peer ignores headers", remote: "198.51.100.9:4000", want: Identity{Key: "ip:198.51.100.9"}},
		{name: "neighbour of trusted address", remote: "192.168.1.11:4000", want: Identity{Key: "ip:192.168.1.11"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(spoofed, tt.remote))
		})
	}
}

func TestIdentityResolver_EmptyTrustsEveryone(t *testing.T) {
	resolver, err := NewIdentityResolver(nil)
	require.NoError(t, err)
	assert.True(t, resolver.TrustsAll())

	got := resolver.Resolve(headers(map[string]string{"X-User-ID": "42"}), "198.51.100.9:4000")
	assert.Equal(t, Identity{Key: "user:42", Authenticated: true}, got)

	var unset *IdentityResolver
	assert.Equal(t, got, unset.Resolve(headers(map[string]string{"X-User-ID": "42"}), "198.51.100.9:4000"))
}

func TestNewIdentityResolver_RejectsGarbage(t *testing.T) {
	_, err := NewIdentityResolver([]string{"not-an-ip"})
	assert.Error(t, err)

	_, err = NewIdentityResolver([]string{"10.0.0.0/33"})
	assert.Error(t, err)
}

func TestParseUserAgent(t *testing.T) {
	ua := "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	info := ParseUserAgent(ua, "en-US,en;q=0.9")
	require.NotNil(t, info)
	assert.Equal(t, "Computer", info.Device)
	assert.Contains(t, info.Browser, "Chrome")
	assert.Equal(t, "en-US", info.Locale)

	assert.Nil(t, ParseUserAgent("", ""))
}
