package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind identifica el tipo de token. Cada kind firma con su propio secreto.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// TTLs por defecto de cada kind.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

var (
	// ErrMissingSecret indica que falta el secreto de alguno de los kinds.
	// Es condición fatal de arranque: el proceso no debe iniciar sin secretos.
	ErrMissingSecret = errors.New("jwt: missing signing secret")

	// ErrSameSecret indica que ambos kinds comparten secreto (prohibido).
	ErrSameSecret = errors.New("jwt: access and refresh secrets must differ")
)

// Issuer firma tokens HS256 con un secreto independiente por kind.
// No tiene efectos secundarios: es función pura de sus inputs más los
// secretos configurados.
type Issuer struct {
	Iss        string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	accessSecret  []byte
	refreshSecret []byte
}

// NewIssuer crea un Issuer. Falla si falta alguno de los secretos o si
// ambos son iguales.
func NewIssuer(iss, accessSecret, refreshSecret string) (*Issuer, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, ErrMissingSecret
	}
	if accessSecret == refreshSecret {
		return nil, ErrSameSecret
	}
	return &Issuer{
		Iss:           iss,
		AccessTTL:     DefaultAccessTTL,
		RefreshTTL:    DefaultRefreshTTL,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}, nil
}

func (i *Issuer) secretFor(kind Kind) []byte {
	if kind == KindRefresh {
		return i.refreshSecret
	}
	return i.accessSecret
}

func (i *Issuer) ttlFor(kind Kind) time.Duration {
	if kind == KindRefresh {
		return i.RefreshTTL
	}
	return i.AccessTTL
}

// Sign emite un token firmado para el kind dado con su TTL por defecto.
// El payload lleva {sub, email} más los claims estándar.
func (i *Issuer) Sign(sub, email string, kind Kind) (string, time.Time, error) {
	return i.SignWithTTL(sub, email, kind, i.ttlFor(kind))
}

// SignWithTTL emite un token con un TTL explícito.
// Cada token lleva un jti único: dos emisiones en el mismo segundo no
// producen el mismo string firmado.
func (i *Issuer) SignWithTTL(sub, email string, kind Kind, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)

	claims := jwtv5.MapClaims{
		"iss":   i.Iss,
		"sub":   sub,
		"email": email,
		"kind":  string(kind),
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   exp.Unix(),
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secretFor(kind))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
