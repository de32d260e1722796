// Package resume contiene el service de carga y análisis de CVs.
package resume

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dropDatabas3/cvision/internal/files"
	dto "github.com/dropDatabas3/cvision/internal/http/dto/resume"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
	"github.com/dropDatabas3/cvision/internal/observability/metrics"
	"github.com/dropDatabas3/cvision/internal/scoring"
	"github.com/dropDatabas3/cvision/internal/store/core"
)

// Errores del service. Los controllers los mapean a errores HTTP.
var (
	ErrNotFound        = fmt.Errorf("resume not found")
	ErrUnsupportedFile = fmt.Errorf("unsupported file type")
	ErrFileTooLarge    = fmt.Errorf("file too large")
)

// Service expone las operaciones sobre CVs de un usuario.
type Service interface {
	// Upload guarda el archivo, registra el CV y dispara el análisis.
	// Si el motor falla, el CV queda registrado sin score.
	Upload(ctx context.Context, userID, fileName string, r io.Reader) (*dto.UploadResponse, error)

	// List retorna los CVs del usuario, el más reciente primero.
	List(ctx context.Context, userID string) (*dto.ListResponse, error)

	// Get retorna un CV del usuario. Un CV ajeno es ErrNotFound.
	Get(ctx context.Context, userID, resumeID string) (*dto.Item, error)
}

// Deps contiene las dependencias del service.
type Deps struct {
	Resumes  core.ResumeRepository
	Files    files.Store
	Analyzer scoring.Analyzer // nil desactiva el análisis
}

type service struct {
	deps Deps
}

// NewService crea el service de CVs.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

func (s *service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (*dto.UploadResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("resume"),
		logger.Op("Upload"),
		logger.UserID(userID),
	)

	path, err := s.deps.Files.Save(userID, fileName, r)
	if err != nil {
		switch {
		case errors.Is(err, files.ErrUnsupportedType):
			return nil, ErrUnsupportedFile
		case errors.Is(err, files.ErrTooLarge):
			return nil, ErrFileTooLarge
		}
		log.Error("file save failed", logger.Err(err))
		return nil, err
	}

	rec, err := s.deps.Resumes.Create(ctx, core.CreateResumeInput{
		UserID:   userID,
		FileName: fileName,
		FilePath: path,
	})
	if err != nil {
		log.Error("resume create failed", logger.Err(err))
		// El archivo huérfano se limpia; el error original manda
		_ = s.deps.Files.Remove(path)
		return nil, err
	}

	log = log.With(logger.ResumeID(rec.ID))
	status := "uploaded"

	if s.deps.Analyzer != nil {
		analysis, err := s.deps.Analyzer.Analyze(ctx, path)
		if err != nil {
			// El CV queda registrado igual; el análisis se puede reintentar
			log.Warn("analysis failed, resume stored without score", logger.Err(err))
			metrics.RecordResumeAnalysis("failed")
		} else if err := s.deps.Resumes.SetAnalysis(ctx, rec.ID, *analysis); err != nil {
			log.Error("failed to persist analysis", logger.Err(err))
			metrics.RecordResumeAnalysis("failed")
		} else {
			status = "analyzed"
			metrics.RecordResumeAnalysis("analyzed")
		}
	} else {
		metrics.RecordResumeAnalysis("disabled")
	}

	log.Info("resume uploaded", logger.String("status", status))

	return &dto.UploadResponse{
		ResumeID: rec.ID,
		FileName: rec.FileName,
		Status:   status,
	}, nil
}

func (s *service) List(ctx context.Context, userID string) (*dto.ListResponse, error) {
	recs, err := s.deps.Resumes.ListByUser(ctx, userID)
	if err != nil {
		logger.From(ctx).Error("resume list failed", logger.Err(err), logger.UserID(userID))
		return nil, err
	}

	out := &dto.ListResponse{Resumes: make([]dto.Item, 0, len(recs))}
	for _, r := range recs {
		out.Resumes = append(out.Resumes, toItem(&r))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, userID, resumeID string) (*dto.Item, error) {
	rec, err := s.deps.Resumes.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Nunca exponemos CVs de otro usuario, ni siquiera como 403
	if rec.UserID != userID {
		return nil, ErrNotFound
	}
	item := toItem(rec)
	return &item, nil
}

func toItem(r *core.Resume) dto.Item {
	return dto.Item{
		ResumeID:        r.ID,
		FileName:        r.FileName,
		Score:           r.Score,
		Skills:          r.Skills,
		ExperienceYears: r.ExperienceYears,
		Education:       r.Education,
		UploadedAt:      r.UploadedAt,
	}
}
