// Package auth issues and validates the signed tokens the service
// hands out: partner API tokens and single-document portal download
// tokens. Both are HS256 JWTs under the portal secret.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/heartmarshall/ediflow-backend/pkg/ctxutil"
)

// TokenManager signs and validates HS256 tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a token manager.
// secret must be at least 32 characters for HS256 security.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

const (
	audiencePortal  = "portal"
	audiencePartner = "partner"
)

// partnerClaims extend standard claims with the caller's identity.
type partnerClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	VAT  string `json:"vat,omitempty"`
}

// GeneratePartnerToken creates a signed token identifying an API caller.
// Documents created during ingestion default to this partner.
func (m *TokenManager) GeneratePartnerToken(p ctxutil.Partner) (string, error) {
	now := time.Now()
	claims := partnerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Name,
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{audiencePartner},
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Name: p.Name,
		VAT:  p.VAT,
	}
	return m.sign(claims)
}

// ValidatePartnerToken parses a partner token and returns the caller.
func (m *TokenManager) ValidatePartnerToken(tokenString string) (ctxutil.Partner, error) {
	var claims partnerClaims
	if err := m.parse(tokenString, audiencePartner, &claims); err != nil {
		return ctxutil.Partner{}, err
	}
	if claims.Name == "" {
		return ctxutil.Partner{}, fmt.Errorf("partner token without name")
	}
	return ctxutil.Partner{Name: claims.Name, VAT: claims.VAT}, nil
}

// GeneratePortalToken creates a signed download token scoped to one
// document. The portal route refuses any other document id.
func (m *TokenManager) GeneratePortalToken(docID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   docID.String(),
		Issuer:    m.issuer,
		Audience:  jwt.ClaimStrings{audiencePortal},
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return m.sign(claims)
}

// ValidatePortalToken parses a portal token and returns the document id
// it grants access to.
func (m *TokenManager) ValidatePortalToken(tokenString string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	if err := m.parse(tokenString, audiencePortal, &claims); err != nil {
		return uuid.Nil, err
	}
	docID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse subject: %w", err)
	}
	return docID, nil
}

func (m *TokenManager) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) parse(tokenString, audience string, claims jwt.Claims) error {
	if tokenString == "" {
		return fmt.Errorf("token is empty")
	}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithAudience(audience))
	if err != nil {
		return fmt.Errorf("parse token: %w", err)
	}
	return nil
}
