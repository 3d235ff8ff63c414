package service

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/itsmrajesh/quizgen-backend/internal/domain"
	"github.com/itsmrajesh/quizgen-backend/internal/dto"
	"github.com/itsmrajesh/quizgen-backend/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	googleCertsURL = "https://www.googleapis.com/oauth2/v1/certs"

	googleIssuer      = "accounts.google.com"
	googleIssuerHTTPS = "https://accounts.google.com"

	// defaultAccountName is used when the token carries no name claim,
	// which is the case for service-account credentials.
	defaultAccountName = "service-account"

	certCacheTTL = 1 * time.Hour
)

var (
	ErrInvalidIDToken  = errors.New("invalid google id token")
	ErrWrongAudience   = errors.New("token issued for a different client")
	ErrUnknownIssuer   = errors.New("token issued by an unknown issuer")
	ErrIncompleteToken = errors.New("token is missing required claims")
)

// AuthService verifies a bearer credential and extracts the caller's
// identity. Stateless apart from the signing-key cache.
type AuthService interface {
	Authenticate(ctx context.Context, rawToken string) (*domain.Identity, error)
}

// KeyProvider supplies the RSA public keys Google currently signs ID
// tokens with, keyed by key ID.
type KeyProvider interface {
	Keys(ctx context.Context) (map[string]*rsa.PublicKey, error)
}

// googleKeyProvider fetches Google's published signing certificates and
// caches the extracted public keys. Concurrent refreshes collapse into a
// single fetch via singleflight.
type googleKeyProvider struct {
	httpClient *http.Client
	certsURL   string

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time

	sfGroup singleflight.Group
}

// NewGoogleKeyProvider creates a KeyProvider backed by Google's cert
// endpoint.
func NewGoogleKeyProvider() KeyProvider {
	return &googleKeyProvider{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		certsURL:   googleCertsURL,
	}
}

func (p *googleKeyProvider) Keys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	p.mu.RLock()
	if p.keys != nil && time.Now().Before(p.expiresAt) {
		keys := p.keys
		p.mu.RUnlock()
		return keys, nil
	}
	p.mu.RUnlock()

	res, err, _ := p.sfGroup.Do("google-certs", func() (interface{}, error) {
		keys, err := p.fetch(ctx)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.keys = keys
		p.expiresAt = time.Now().Add(certCacheTTL)
		p.mu.Unlock()
		return keys, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(map[string]*rsa.PublicKey), nil
}

// fetch downloads the kid -> PEM certificate map and extracts the RSA
// public keys.
func (p *googleKeyProvider) fetch(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.certsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build certs request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google certs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google certs endpoint returned status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return nil, fmt.Errorf("failed to decode google certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, certPEM := range certs {
		block, _ := pem.Decode([]byte(certPEM))
		if block == nil {
			return nil, fmt.Errorf("failed to decode PEM block for kid %s", kid)
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse certificate for kid %s: %w", kid, err)
		}
		rsaKey, ok := cert.PublicKey.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("certificate for kid %s does not hold an RSA key", kid)
		}
		keys[kid] = rsaKey
	}
	return keys, nil
}

// googleAuthService implements AuthService against Google-issued ID
// tokens for a single configured OAuth client.
type googleAuthService struct {
	clientID string
	keys     KeyProvider
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(clientID string, keys KeyProvider) (AuthService, error) {
	if clientID == "" {
		return nil, errors.New("google client ID is not configured")
	}
	if keys == nil {
		return nil, errors.New("key provider cannot be nil")
	}
	return &googleAuthService{clientID: clientID, keys: keys}, nil
}

// Authenticate verifies the token's signature, expiry, issuer and
// audience, then extracts the caller's identity. Any failure maps to an
// unauthorized domain error; the handler never proceeds to generation.
func (s *googleAuthService) Authenticate(ctx context.Context, rawToken string) (*domain.Identity, error) {
	appLogger := logger.Get()

	claims := &dto.GoogleIDTokenClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("token header has no kid")
		}
		keys, err := s.keys.Keys(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load signing keys: %w", err)
		}
		key, ok := keys[kid]
		if !ok {
			return nil, fmt.Errorf("no signing key for kid %s", kid)
		}
		return key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("ID token expired",
				zap.String("token_snippet", tokenSnippet(rawToken)))
		} else {
			appLogger.Warn("ID token validation failed",
				zap.Error(err),
				zap.String("token_snippet", tokenSnippet(rawToken)))
		}
		return nil, domain.NewUnauthorizedError("Invalid or expired credential", fmt.Errorf("%w: %v", ErrInvalidIDToken, err))
	}
	if !token.Valid {
		return nil, domain.NewUnauthorizedError("Invalid or expired credential", ErrInvalidIDToken)
	}

	if claims.Issuer != googleIssuer && claims.Issuer != googleIssuerHTTPS {
		return nil, domain.NewUnauthorizedError("Invalid or expired credential", ErrUnknownIssuer)
	}

	if !audienceContains(claims.Audience, s.clientID) {
		appLogger.Warn("ID token has wrong audience",
			zap.Strings("aud", claims.Audience),
			zap.String("subject", claims.Subject))
		return nil, domain.NewUnauthorizedError("Invalid or expired credential", ErrWrongAudience)
	}

	if claims.Subject == "" || claims.Email == "" {
		return nil, domain.NewUnauthorizedError("Invalid or expired credential", ErrIncompleteToken)
	}

	name := claims.Name
	if name == "" {
		name = defaultAccountName
	}

	return &domain.Identity{
		UserID:          claims.Subject,
		Email:           claims.Email,
		Name:            name,
		AuthorizedParty: claims.AuthorizedParty,
	}, nil
}

func audienceContains(aud jwt.ClaimStrings, clientID string) bool {
	for _, a := range aud {
		if a == clientID {
			return true
		}
	}
	return false
}

func tokenSnippet(token string) string {
	return token[:min(len(token), 20)] + "..."
}
