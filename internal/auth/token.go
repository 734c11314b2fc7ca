package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/credsure/admin-api/internal/domain"
)

// TokenTTLSeconds is the fixed lifetime of an access token (12 hours).
const TokenTTLSeconds = 60 * 60 * 12

// tokenHeader is the constant first segment. Its content is not interpreted
// on verify beyond being present.
const tokenHeader = `{"alg":"HS256","typ":"JWT"}`

// ErrInvalidToken is returned for every verification failure. Malformed,
// badly signed and expired tokens are deliberately indistinguishable to the
// caller.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity payload carried by a signed token. Email is
// denormalized for display only and never consulted for authorization.
type Claims struct {
	Subject   string      `json:"sub"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	IssuedAt  int64       `json:"iat"`
	ExpiresAt int64       `json:"exp"`
}

// TokenManager issues and verifies compact HMAC-SHA256 signed tokens. It is
// stateless: verification is a pure function of the token string and the
// signing secret.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager builds a manager around the server-wide signing secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for the account. Expiry is always issued-at plus the
// fixed TTL.
func (tm *TokenManager) Issue(accountID, email string, role domain.Role) (string, time.Time, error) {
	now := tm.now().Unix()
	claims := Claims{
		Subject:   accountID,
		Email:     email,
		Role:      role,
		IssuedAt:  now,
		ExpiresAt: now + TokenTTLSeconds,
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", time.Time{}, err
	}

	headerSeg := base64.RawURLEncoding.EncodeToString([]byte(tokenHeader))
	claimsSeg := base64.RawURLEncoding.EncodeToString(payload)
	signature := tm.sign(headerSeg + "." + claimsSeg)

	token := headerSeg + "." + claimsSeg + "." + signature
	return token, time.Unix(claims.ExpiresAt, 0), nil
}

// Verify checks signature and expiry and returns the parsed claims. Every
// failure mode resolves to ErrInvalidToken.
func (tm *TokenManager) Verify(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, ErrInvalidToken
	}

	expected := tm.sign(parts[0] + "." + parts[1])
	if !signaturesEqual(parts[2], expected) {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidToken
	}

	// Strict expiry: a token verified at exactly exp is already expired.
	if claims.ExpiresAt <= tm.now().Unix() {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (tm *TokenManager) sign(signingInput string) string {
	mac := hmac.New(sha256.New, tm.secret)
	mac.Write([]byte(signingInput))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// signaturesEqual compares signatures in constant time. Unequal lengths run
// an equivalent-effort comparison before rejecting.
func signaturesEqual(provided, expected string) bool {
	a := []byte(provided)
	b := []byte(expected)
	if len(a) != len(b) {
		if len(a) < len(b) {
			a = make([]byte, len(b))
		} else {
			b = make([]byte, len(a))
		}
		subtle.ConstantTimeCompare(a, b)
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
