package util

import (
	"net/http/httptest"
	"testing"
)

func TestClientIPUntrustedPeerIgnoresForwarded(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.9:4312"
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	if got := ClientIP(req, nil); got != "203.0.113.9" {
		t.Fatalf("ClientIP = %q, want direct peer", got)
	}
}

func TestClientIPTrustedProxyWalksChain(t *testing.T) {
	trusted, err := NewProxyTrust([]string{"10.0.0.0/8"})
	if err != nil {
		t.Fatalf("parse trusted proxies: %v", err)
	}
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.5:80"
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.2")
	if got := ClientIP(req, trusted); got != "198.51.100.1" {
		t.Fatalf("ClientIP = %q, want first untrusted hop", got)
	}
}

func TestClientIPTrustedProxyRealIPFallback(t *testing.T) {
	trusted, err := NewProxyTrust([]string{"10.0.0.5"})
	if err != nil {
		t.Fatalf("parse trusted proxies: %v", err)
	}
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.5:80"
	req.Header.Set("X-Real-IP", "198.51.100.7")
	if got := ClientIP(req, trusted); got != "198.51.100.7" {
		t.Fatalf("ClientIP = %q, want X-Real-IP value", got)
	}
}

func TestNewProxyTrustRejectsGarbage(t *testing.T) {
	if _, err := NewProxyTrust([]string{"not-an-ip"}); err == nil {
		t.Fatal("expected parse error")
	}
	trusted, err := NewProxyTrust([]string{"", "  "})
	if err != nil || trusted != nil {
		t.Fatalf("blank entries should yield nil trust, got %v / %v", trusted, err)
	}
}
