// Package otp maneja códigos de verificación de email de un solo uso.
// Los códigos viven en el cache con TTL; verificar un código lo consume.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/dropDatabas3/cvision/internal/cache"
)

// DefaultTTL es la ventana de validez de un código.
const DefaultTTL = 5 * time.Minute

const codeDigits = 6

// Store emite y verifica códigos OTP sobre un cache con expiry.
type Store struct {
	Cache cache.Client
	TTL   time.Duration
}

// NewStore crea un Store con TTL por defecto de 5 minutos.
func NewStore(c cache.Client) *Store {
	return &Store{Cache: c, TTL: DefaultTTL}
}

func key(email string) string { return "otp:" + email }

// Issue genera un código numérico de 6 dígitos para el email y lo guarda
// con TTL, pisando cualquier código pendiente anterior.
func (s *Store) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := s.Cache.Set(ctx, key(email), code, ttl); err != nil {
		return "", fmt.Errorf("otp: store code: %w", err)
	}
	return code, nil
}

// Verify compara el código presentado contra el pendiente para el email.
// En éxito borra el código (at-most-once): una segunda verificación con el
// mismo código retorna false.
func (s *Store) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.Cache.Get(ctx, key(email))
	if err != nil {
		if cache.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}
	// Consumir el código. Si el delete falla, el código sigue vivo hasta su
	// TTL; preferimos reportar el error antes que dejar pasar un doble uso.
	if err := s.Cache.Delete(ctx, key(email)); err != nil {
		return false, err
	}
	return true, nil
}

// generateCode produce un código de 6 dígitos con crypto/rand (con ceros a
// la izquierda preservados).
func generateCode() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}
