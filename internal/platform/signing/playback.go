// Package signing produces short-lived HMAC-signed playback URLs so the
// raw video URL is never handed out unauthenticated.
package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Signer struct {
	Secret []byte
}

type Signed struct {
	URL string
	Exp int64
	UID int64
	Sig string
}

func New(secret string) *Signer {
	return &Signer{Secret: []byte(secret)}
}

func (s *Signer) Sign(rawURL string, userID int64, exp time.Time) Signed {
	sig := s.signValue(rawURL, userID, exp.Unix())
	return Signed{URL: rawURL, Exp: exp.Unix(), UID: userID, Sig: sig}
}

func (s *Signer) Verify(rawURL string, userID int64, exp int64, sig string) bool {
	if time.Now().Unix() > exp {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(s.signValue(rawURL, userID, exp)))
}

func (s *Signer) signValue(rawURL string, userID int64, exp int64) string {
	mac := hmac.New(sha256.New, s.Secret)
	mac.Write([]byte(rawURL))
	mac.Write([]byte("|"))
	mac.Write([]byte(strconv.FormatInt(userID, 10)))
	mac.Write([]byte("|"))
	mac.Write([]byte(strconv.FormatInt(exp, 10)))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// BuildSignedURL appends the signature params to the playback URL itself.
func BuildSignedURL(signed Signed) (string, error) {
	u, err := url.Parse(signed.URL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("exp", strconv.FormatInt(signed.Exp, 10))
	q.Set("uid", strconv.FormatInt(signed.UID, 10))
	q.Set("sig", signed.Sig)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ExtractSigned parses the params produced by BuildSignedURL.
func ExtractSigned(query url.Values) (int64, int64, string, error) {
	uidStr := strings.TrimSpace(query.Get("uid"))
	expStr := strings.TrimSpace(query.Get("exp"))
	sig := strings.TrimSpace(query.Get("sig"))
	if uidStr == "" || expStr == "" || sig == "" {
		return 0, 0, "", fmt.Errorf("missing signed params")
	}
	uid, err := strconv.ParseInt(uidStr, 10, 64)
	if err != nil {
		return 0, 0, "", err
	}
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return 0, 0, "", err
	}
	return uid, exp, sig, nil
}
