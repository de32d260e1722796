package auth

import (
	"encoding/json"
	"net/http"

	dto "github.com/dropDatabas3/cvision/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/cvision/internal/http/errors"
	"github.com/dropDatabas3/cvision/internal/http/middlewares"
	"github.com/dropDatabas3/cvision/internal/store/core"
)

// MeController expone los datos del usuario autenticado.
type MeController struct {
	users core.UserRepository
}

// NewMeController crea un nuevo controller de /me. Con users nil, /me
// responde solo con las claims del token.
func NewMeController(users core.UserRepository) *MeController {
	return &MeController{users: users}
}

// Me maneja GET /v1/me. Corre detrás de RequireAuth.
func (c *MeController) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims := middlewares.GetClaims(ctx)
	if claims == nil {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	res := dto.MeResponse{
		UserID: claims.Subject,
		Email:  claims.Email,
	}

	if c.users != nil {
		if u, err := c.users.GetByID(ctx, claims.Subject); err == nil {
			res.Name = u.Name
			res.Email = u.Email
		}
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(res)
}
