package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name       string
		ua         string
		wantDevice string
		wantOS     string
	}{
		{"empty", "", "unknown", ""},
		{
			"desktop chrome",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"desktop", "Windows 10",
		},
		{
			"iphone",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			"mobile", "",
		},
		{"googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", "bot", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := ParseUserAgent(tc.ua)
			assert.Equal(t, tc.wantDevice, info.DeviceType)
			if tc.wantOS != "" {
				assert.Equal(t, tc.wantOS, info.OS)
			}
		})
	}
}

func TestParseUserAgent_Browser(t *testing.T) {
	info := ParseUserAgent("Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0")
	assert.Equal(t, "Firefox", info.Browser)
}

func TestNetworkScope(t *testing.T) {
	assert.Equal(t, ScopeLoopback, NetworkScope("127.0.0.1"))
	assert.Equal(t, ScopeLoopback, NetworkScope("::1"))
	assert.Equal(t, ScopePrivate, NetworkScope("10.1.2.3"))
	assert.Equal(t, ScopePrivate, NetworkScope("192.168.0.9"))
	assert.Equal(t, ScopePublic, NetworkScope("203.0.113.195"))
	assert.Equal(t, ScopeInvalid, NetworkScope("not-an-ip"))
	assert.Equal(t, ScopeInvalid, NetworkScope(""))
}
