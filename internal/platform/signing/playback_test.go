package signing

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestSignVerify(t *testing.T) {
	s := New("playback-secret")
	signed := s.Sign("https://cdn.example.com/v/1.mp4", 42, time.Now().Add(15*time.Minute))

	if !s.Verify(signed.URL, 42, signed.Exp, signed.Sig) {
		t.Fatal("expected signature to verify")
	}
	if s.Verify(signed.URL, 43, signed.Exp, signed.Sig) {
		t.Fatal("expected verify to fail for a different user")
	}
	if s.Verify("https://cdn.example.com/v/2.mp4", 42, signed.Exp, signed.Sig) {
		t.Fatal("expected verify to fail for a different url")
	}
}

func TestVerify_Expired(t *testing.T) {
	s := New("playback-secret")
	signed := s.Sign("https://cdn.example.com/v/1.mp4", 42, time.Now().Add(-time.Minute))
	if s.Verify(signed.URL, 42, signed.Exp, signed.Sig) {
		t.Fatal("expected expired signature to fail")
	}
}

func TestBuildAndExtract(t *testing.T) {
	s := New("playback-secret")
	signed := s.Sign("https://cdn.example.com/v/1.mp4", 42, time.Now().Add(time.Hour))

	raw, err := BuildSignedURL(signed)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasPrefix(raw, "https://cdn.example.com/v/1.mp4?") {
		t.Fatalf("unexpected url: %s", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	uid, exp, sig, err := ExtractSigned(u.Query())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if uid != 42 || exp != signed.Exp || sig != signed.Sig {
		t.Fatalf("round trip mismatch: uid=%d exp=%d", uid, exp)
	}
}
