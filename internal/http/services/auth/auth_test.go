package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/cvision/internal/cache"
	dto "github.com/dropDatabas3/cvision/internal/http/dto/auth"
	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/security/blacklist"
	"github.com/dropDatabas3/cvision/internal/security/otp"
	"github.com/dropDatabas3/cvision/internal/security/password"
	tokens "github.com/dropDatabas3/cvision/internal/security/token"
	"github.com/dropDatabas3/cvision/internal/store/core"
)

var testHashParams = password.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

type testEnv struct {
	users    *fakeUsers
	issuer   *jwtx.Issuer
	otps     *otp.Store
	bl       *blacklist.Blacklist
	sent     []string // códigos enviados por email
	services Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	issuer, err := jwtx.NewIssuer("cvision-test", "access-secret", "refresh-secret")
	require.NoError(t, err)

	env := &testEnv{
		users:  newFakeUsers(),
		issuer: issuer,
		otps:   otp.NewStore(cache.NewMemory("t:", time.Minute)),
		bl:     blacklist.New(cache.NewMemory("t:", time.Minute)),
	}

	env.services = Services{
		OTP: NewOTPService(OTPDeps{
			Store: env.otps,
			Send: func(to, name, code string, ttl time.Duration) error {
				env.sent = append(env.sent, code)
				return nil
			},
		}),
		Register: NewRegisterService(RegisterDeps{Users: env.users, Store: env.otps, Issuer: issuer, Params: &testHashParams}),
		Login:    NewLoginService(LoginDeps{Users: env.users, Issuer: issuer}),
		Refresh:  NewRefreshService(RefreshDeps{Users: env.users, Issuer: issuer}),
		Logout:   NewLogoutService(LogoutDeps{Users: env.users, Issuer: issuer, Blacklist: env.bl}),
	}
	return env
}

// registerUser registra un usuario completo vía OTP y devuelve su ID.
func (e *testEnv) registerUser(t *testing.T, name, email, pass string) string {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.services.OTP.Send(ctx, name, email))
	code := e.sent[len(e.sent)-1]

	res, err := e.services.Register.Register(ctx, dto.RegisterRequest{
		Name: name, Email: email, Password: pass, OTP: code,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	return res.UserID
}

func TestRegisterFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.registerUser(t, "Ana", "ana@example.com", "hunter22")
	assert.NotEmpty(t, id)

	u, err := env.users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	require.NotNil(t, u.PasswordHash)
	assert.True(t, password.Verify("hunter22", *u.PasswordHash))

	// El registro deja una sesión abierta
	assert.Len(t, env.users.hashes(id), 1)
}

func TestRegister_OTPConsumedOnUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.services.OTP.Send(ctx, "Ana", "ana@example.com"))
	code := env.sent[0]

	_, err := env.services.Register.Register(ctx, dto.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "x12345678", OTP: code,
	})
	require.NoError(t, err)

	// El mismo código no sirve dos veces
	_, err = env.services.Register.Register(ctx, dto.RegisterRequest{
		Name: "Ana2", Email: "ana@example.com", Password: "x12345678", OTP: code,
	})
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestRegister_WrongOTP(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.services.OTP.Send(ctx, "Ana", "ana@example.com"))

	_, err := env.services.Register.Register(ctx, dto.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "x12345678", OTP: "000000",
	})
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestSendOTP_DoesNotRevealRegisteredEmails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "Ana", "ana@example.com", "hunter22")

	// El envío no distingue cuentas existentes; el conflicto recién
	// aparece en el registro
	err := env.services.OTP.Send(ctx, "Ana", "ana@example.com")
	assert.NoError(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "Ana", "ana@example.com", "hunter22")

	// Forzar un OTP válido para el mismo email, simulando carrera
	code, err := env.otps.Issue(ctx, "ana@example.com")
	require.NoError(t, err)

	_, err = env.services.Register.Register(ctx, dto.RegisterRequest{
		Name: "Otra Ana", Email: "ana@example.com", Password: "x12345678", OTP: code,
	})
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestLogin_HappyPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.registerUser(t, "Ana", "ana@example.com", "hunter22")

	res, err := env.services.Login.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	assert.Equal(t, id, res.UserID)
	assert.Equal(t, "Ana", res.Name)
	assert.Equal(t, "ana@example.com", res.Email)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, int64(jwtx.DefaultAccessTTL.Seconds()), res.ExpiresIn)

	// El access token sirve, el refresh queda hasheado en la lista
	claims, err := env.issuer.Parse(res.AccessToken, jwtx.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)

	// Queda la sesión del registro más la del login, la nueva al final
	hashes := env.users.hashes(id)
	require.Len(t, hashes, 2)
	assert.Equal(t, tokens.SHA256Base64URL(res.RefreshToken), hashes[1])
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "Ana", "ana@example.com", "hunter22")

	_, err := env.services.Login.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Login.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_SocialOnlyAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Cuenta creada por proveedor social: sin password
	_, err := env.users.Create(ctx, core.CreateUserInput{Name: "Sol", Email: "sol@example.com"})
	require.NoError(t, err)

	_, err = env.services.Login.Login(ctx, dto.LoginRequest{Email: "sol@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrSocialOnlyAccount)
}

func TestLogin_SessionCapFIFO(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.registerUser(t, "Ana", "ana@example.com", "hunter22")

	var refreshes []string
	for i := 0; i < core.MaxRefreshTokenHashes+2; i++ {
		res, err := env.services.Login.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
		require.NoError(t, err)
		refreshes = append(refreshes, res.RefreshToken)
	}

	hashes := env.users.hashes(id)
	require.Len(t, hashes, core.MaxRefreshTokenHashes)

	// Sobreviven exactamente los más nuevos, en orden
	for i := 0; i < core.MaxRefreshTokenHashes; i++ {
		want := tokens.SHA256Base64URL(refreshes[len(refreshes)-core.MaxRefreshTokenHashes+i])
		assert.Equal(t, want, hashes[i])
	}
}

func TestRefresh_Rotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.registerUser(t, "Ana", "ana@example.com", "hunter22")
	login, err := env.services.Login.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	res, err := env.services.Refresh.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, res.RefreshToken)

	// El hash viejo salió, el nuevo entró: la cantidad de sesiones no cambia
	hashes := env.users.hashes(id)
	require.Len(t, hashes, 2)
	assert.Equal(t, tokens.SHA256Base64URL(res.RefreshToken), hashes[1])
}

func TestRefresh_ReplayRevokesAllSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.registerUser(t, "Ana", "ana@example.com", "hunter22")
	login, err := env.services.Login.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	// Segunda sesión legítima que también debe caer ante el replay
	_, err = env.services.Login.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	// Rotación normal consume el primer refresh
	_, err = env.services.Refresh.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)

	// Replay del refresh ya rotado: se revoca TODO
	_, err = env.services.Refresh.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrReuseDetected)
	assert.Empty(t, env.users.hashes(id))

	// Ninguna sesión sobrevive: ni siquiera la recién rotada
	_, err = env.services.Login.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)
}

func TestRefresh_GarbageToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.services.Refresh.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "Ana", "ana@example.com", "hunter22")
	login, err := env.services.Login.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	// Un access token no sirve para refrescar
	_, err = env.services.Refresh.Refresh(ctx, login.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestLogout_RevokesAccessAndRemovesSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.registerUser(t, "Ana", "ana@example.com", "hunter22")
	login, err := env.services.Login.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, env.services.Logout.Logout(ctx, login.AccessToken, login.RefreshToken))

	assert.True(t, env.bl.IsRevoked(ctx, login.AccessToken))
	// Solo cae la sesión presentada; la del registro sigue viva
	assert.Len(t, env.users.hashes(id), 1)

	// El refresh eliminado ahora cuenta como replay y arrasa con el resto
	_, err = env.services.Refresh.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrReuseDetected)
	assert.Empty(t, env.users.hashes(id))
}

func TestLogout_InvalidRefreshStillRevokesAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "Ana", "ana@example.com", "hunter22")
	login, err := env.services.Login.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, env.services.Logout.Logout(ctx, login.AccessToken, "garbage"))
	assert.True(t, env.bl.IsRevoked(ctx, login.AccessToken))
}
