package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims we expect from the authorization server.
// Spring style tokens carry "username" and "authorities"; "roles" is accepted too.
type Claims struct {
	Username    string   `json:"username,omitempty"`
	Authorities []string `json:"authorities,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Verifier turns a raw bearer token into a Principal.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

var ErrInvalidToken = errors.New("invalid token")

// JWTVerifier validates signed JWTs with a fixed key.
type JWTVerifier struct {
	methods []string
	key     interface{}
}

// NewHMACVerifier validates HS256/384/512 tokens signed with secret.
func NewHMACVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{
		methods: []string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()},
		key:     secret,
	}
}

// NewRSAVerifier validates RS256/384/512 tokens against a PEM encoded public key.
func NewRSAVerifier(pemBytes []byte) (*JWTVerifier, error) {
	pub, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return newRSAVerifier(pub), nil
}

// NewRSAVerifierFromFile is NewRSAVerifier reading the key from path.
func NewRSAVerifierFromFile(path string) (*JWTVerifier, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	return NewRSAVerifier(b)
}

func newRSAVerifier(pub *rsa.PublicKey) *JWTVerifier {
	return &JWTVerifier{
		methods: []string{jwt.SigningMethodRS256.Alg(), jwt.SigningMethodRS384.Alg(), jwt.SigningMethodRS512.Alg()},
		key:     pub,
	}
}

// Verify validates signature, signing method and expiry and extracts the caller.
func (v *JWTVerifier) Verify(_ context.Context, tokenStr string) (*Principal, error) {
	claims, err := v.parse(tokenStr)
	if err != nil {
		return nil, err
	}

	email := claims.Username
	if email == "" {
		email = claims.Subject
	}
	if email == "" {
		return nil, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}

	names := append(append([]string{}, claims.Authorities...), claims.Roles...)
	return &Principal{Email: email, Roles: ParseRoles(names)}, nil
}

func (v *JWTVerifier) parse(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.key, nil
	}, jwt.WithValidMethods(v.methods), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Signer mints HMAC tokens in the same shape the authorization server issues.
// Used for local development and tests.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewHMACSigner(secret []byte, ttl time.Duration) *Signer {
	return &Signer{secret: secret, ttl: ttl}
}

// Sign returns a token for email carrying roles as ROLE_* authorities.
func (s *Signer) Sign(email string, roles ...Role) (string, error) {
	now := time.Now()
	authorities := make([]string, 0, len(roles))
	for _, r := range roles {
		authorities = append(authorities, r.Authority())
	}
	claims := Claims{
		Username:    email,
		Authorities: authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// GetBearerToken extracts the Bearer token from the Authorization header.
// The scheme is matched case-insensitively ("bearer" is common).
func GetBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}

	return ""
}
