package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrustedProxies(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.1", " 172.16.0.0/12 ", "", "::1"})
	require.NoError(t, err)
	assert.Len(t, proxies.nets, 3)
	assert.True(t, proxies.trusts("172.20.1.1"))
	assert.True(t, proxies.trusts("::1"))
	assert.False(t, proxies.trusts("10.0.0.2"))

	_, err = ParseTrustedProxies([]string{"proxy.local"})
	assert.ErrorIs(t, err, ErrInvalidProxy)

	_, err = ParseTrustedProxies([]string{"10.0.0.0/33"})
	assert.ErrorIs(t, err, ErrInvalidProxy)
}

func TestTrustedProxies_ClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		proxies    *TrustedProxies
		remoteAddr string
		forwarded  string
		realIP     string
		want       string
	}{
		{name: "no proxies configured", proxies: nil, remoteAddr: "192.0.2.1:5000", forwarded: "203.0.113.7", realIP: "198.51.100.2", want: "192.0.2.1"},
		{name: "untrusted peer", proxies: proxies, remoteAddr: "192.0.2.1:5000", forwarded: "203.0.113.7", want: "192.0.2.1"},
		{name: "trusted peer", proxies: proxies, remoteAddr: "10.1.2.3:5000", forwarded: "203.0.113.7", want: "203.0.113.7"},
		{name: "proxy chain", proxies: proxies, remoteAddr: "10.1.2.3:5000", forwarded: "198.51.100.9, 203.0.113.7, 10.9.9.9", want: "203.0.113.7"},
		{name: "real ip header", proxies: proxies, remoteAddr: "10.1.2.3:5000", realIP: "198.51.100.2", want: "198.51.100.2"},
		{name: "garbage header", proxies: proxies, remoteAddr: "10.1.2.3:5000", forwarded: "unknown", want: "10.1.2.3"},
		{name: "remote addr without port", proxies: nil, remoteAddr: "192.0.2.1", want: "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-Ip", tt.realIP)
			}
			assert.Equal(t, tt.want, tt.proxies.ClientIP(req))
		})
	}
}
