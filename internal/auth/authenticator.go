// Package auth implements registration, login, and bearer-token
// verification: password hashing with Argon2id at interactive cost, and
// HS256 JWTs carrying the {userId, email, issuedAt, expiresAt} claim set.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"

	"github.com/cardforge/server/internal/apperr"
	"github.com/cardforge/server/internal/data"
	"github.com/cardforge/server/internal/docstore"
)

const (
	tokenIssuer  = "cardforge"
	tokenLifetime = 24 * time.Hour

	// Interactive-use Argon2id parameters, matching the cost class the
	// original used for its libsodium crypto_pwhash_str call.
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

const (
	minDisplayNameLen = 3
	maxDisplayNameLen = 16
)

// Claims is the decoded bearer-token claim set.
type Claims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type jwtClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticator issues and verifies bearer tokens and hashes/verifies
// passwords. It is constructed once with the server's signing secret and
// passed by reference — there is no package-level secret or singleton.
type Authenticator struct {
	data   *data.Service
	secret []byte
}

func New(svc *data.Service, secret string) *Authenticator {
	return &Authenticator{data: svc, secret: []byte(secret)}
}

// RegisterResult is returned on successful registration.
type RegisterResult struct {
	Player *data.Player
}

// Register validates displayName length and email/displayName uniqueness,
// hashes the password, and inserts a new player.
func (a *Authenticator) Register(ctx context.Context, email, password, displayName string) (*RegisterResult, error) {
	if l := len(displayName); l < minDisplayNameLen || l > maxDisplayNameLen {
		return nil, apperr.ValidationFailed("displayName", fmt.Sprintf("display name must be between %d and %d characters", minDisplayNameLen, maxDisplayNameLen))
	}

	if _, ok, err := a.data.FindPlayerByEmail(ctx, email); err != nil {
		return nil, err
	} else if ok {
		return nil, apperr.Conflict("A user with this email already exists.")
	}

	if _, ok, err := a.data.FindPlayerByDisplayName(ctx, displayName); err != nil {
		return nil, err
	} else if ok {
		return nil, apperr.Conflict("A user with this display name already exists.")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, apperr.Backend(fmt.Errorf("hash password: %w", err))
	}

	p := data.NewPlayer()
	p.Email = email
	p.DisplayName = displayName
	p.PasswordHash = hash

	if _, err := a.data.Players.InsertOne(ctx, p); err != nil {
		return nil, apperr.Backend(fmt.Errorf("insert player: %w", err))
	}

	return &RegisterResult{Player: p}, nil
}

// Login verifies email/password and, on success, mints a bearer token.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, *data.Player, error) {
	player, ok, err := a.data.FindPlayerByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if !ok || !verifyPassword(password, player.PasswordHash) {
		return "", nil, apperr.InvalidCredentials()
	}

	now := time.Now()
	if _, err := a.data.Players.UpdateOne(ctx, docstore.ByID(player.ID), docstore.Set("lastLoginAt", now)); err != nil {
		return "", nil, apperr.Backend(fmt.Errorf("record last login: %w", err))
	}
	player.LastLoginAt = now

	token, err := a.issueToken(player)
	if err != nil {
		return "", nil, apperr.Backend(fmt.Errorf("issue token: %w", err))
	}

	return token, player, nil
}

// Verify decodes and validates a bearer token, returning the decoded claims.
func (a *Authenticator) Verify(token string) (*Claims, error) {
	token = strings.TrimPrefix(token, "Bearer ")
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperr.Unauthorized("")
	}

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil || !parsed.Valid {
		return nil, apperr.Unauthorized("")
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok {
		return nil, apperr.Unauthorized("")
	}

	out := &Claims{UserID: claims.UserID, Email: claims.Email}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func (a *Authenticator) issueToken(player *data.Player) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		UserID: player.ID,
		Email:  player.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// hashPassword encodes as "$argon2id$v=19$m=...,t=...,p=...$salt$hash",
// the conventional PHC string format.
func hashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s", argonMemory, argonTime, argonThreads, b64Salt, b64Hash), nil
}

// verifyPassword runs a constant-time comparison against the stored hash,
// never distinguishing malformed stored hashes from mismatches at the
// caller boundary.
func verifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false
	}
	var mem uint32
	var t uint32
	var p uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &t, &p); err != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(password), salt, t, mem, p, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
