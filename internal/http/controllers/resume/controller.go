// Package resume contiene el controller de CVs.
package resume

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/cvision/internal/http/errors"
	"github.com/dropDatabas3/cvision/internal/http/middlewares"
	svc "github.com/dropDatabas3/cvision/internal/http/services/resume"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
)

const (
	// maxUploadBodySize acota el multipart completo (archivo + headers).
	maxUploadBodySize = 12 << 20
	contentTypeJSON   = "application/json; charset=utf-8"
)

// Controller maneja los endpoints de CVs. Todos corren detrás de RequireAuth.
type Controller struct {
	service svc.Service
}

// NewController crea el controller de CVs.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Upload maneja POST /v1/resumes (multipart/form-data, campo "file").
func (c *Controller) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ResumeController.Upload"))

	userID := middlewares.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodySize)
	defer r.Body.Close()

	file, header, err := r.FormFile("file")
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("se espera multipart/form-data con campo file"))
		return
	}
	defer file.Close()

	res, err := c.service.Upload(ctx, userID, header.Filename, file)
	if err != nil {
		log.Debug("upload failed", logger.Err(err))
		switch {
		case errors.Is(err, svc.ErrUnsupportedFile):
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("solo se aceptan archivos .pdf o .docx"))
		case errors.Is(err, svc.ErrFileTooLarge):
			httperrors.WriteError(w, httperrors.ErrBodyTooLarge)
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(res)
}

// List maneja GET /v1/resumes
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middlewares.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	res, err := c.service.List(ctx, userID)
	if err != nil {
		logger.From(ctx).Error("resume list failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(res)
}

// Get maneja GET /v1/resumes/{id}
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := middlewares.GetUserID(ctx)
	if userID == "" {
		httperrors.WriteError(w, httperrors.ErrTokenMissing)
		return
	}

	resumeID := chi.URLParam(r, "id")
	item, err := c.service.Get(ctx, userID, resumeID)
	if err != nil {
		if errors.Is(err, svc.ErrNotFound) {
			httperrors.WriteError(w, httperrors.ErrResumeNotFound)
			return
		}
		logger.From(ctx).Error("resume get failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(item)
}
