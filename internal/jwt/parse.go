package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid cubre cualquier fallo de verificación: firma inválida,
// token expirado o malformado. El detalle no cruza el boundary; quien llama
// solo necesita saber que el token no vale.
var ErrTokenInvalid = errors.New("jwt: token invalid")

// Claims es el payload decodificado de un token válido.
type Claims struct {
	Subject   string
	Email     string
	Kind      Kind
	ExpiresAt time.Time
}

// Parse valida firma (HS256 con el secreto del kind), exp/nbf con una
// pequeña tolerancia, y que el claim "kind" coincida. Nunca lanza pánico:
// todo fallo se reporta como ErrTokenInvalid.
func (i *Issuer) Parse(token string, kind Kind) (*Claims, error) {
	keyfunc := func(t *jwtv5.Token) (any, error) {
		return i.secretFor(kind), nil
	}

	tok, err := jwtv5.Parse(token, keyfunc,
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithLeeway(30*time.Second),
	)
	if err != nil || !tok.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	// Un token de otro kind firma con otro secreto y ya falló arriba,
	// pero el claim se chequea igual por si los secretos rotaron mal.
	if k, _ := claims["kind"].(string); k != string(kind) {
		return nil, ErrTokenInvalid
	}

	out := &Claims{Kind: kind}
	out.Subject, _ = claims["sub"].(string)
	out.Email, _ = claims["email"].(string)
	if expf, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(expf), 0)
	}
	if out.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return out, nil
}

// DecodeExpiryUnverified extrae el claim "exp" SIN verificar la firma.
// Solo sirve para calcular TTLs de blacklist; nunca para autorizar.
func DecodeExpiryUnverified(token string) (time.Time, bool) {
	parser := jwtv5.NewParser()
	tok, _, err := parser.ParseUnverified(token, jwtv5.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return time.Time{}, false
	}
	expf, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(expf), 0), true
}
