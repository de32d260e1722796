// Package scoring integra el motor de análisis de CVs.
// El motor es un servicio HTTP externo; este paquete define el contrato
// Analyzer y un cliente con deduplicación de requests en vuelo.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/cvision/internal/observability/logger"
	"github.com/dropDatabas3/cvision/internal/store/core"
)

// Analyzer analiza el archivo indicado y retorna el resultado del scoring.
type Analyzer interface {
	Analyze(ctx context.Context, filePath string) (*core.ResumeAnalysis, error)
}

// DefaultTimeout tiempo máximo por request al motor. El análisis puede
// tardar varios segundos por archivo.
const DefaultTimeout = 60 * time.Second

// Config configuración del cliente HTTP.
type Config struct {
	// BaseURL URL base del motor, sin path (ej: http://localhost:8001).
	BaseURL string
	// Timeout por request. Si es cero se usa DefaultTimeout.
	Timeout time.Duration
}

// Client cliente HTTP del motor de análisis.
// Requests concurrentes por el mismo archivo se colapsan en una sola
// llamada mediante singleflight.
type Client struct {
	baseURL string
	http    *http.Client

	// sf evita analizar el mismo archivo múltiples veces en paralelo
	sf singleflight.Group
}

// NewClient crea el cliente.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	FilePath string `json:"file_path"`
}

type analyzeResponse struct {
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	Education       string   `json:"education"`
	Score           int      `json:"score"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Analyze envía el archivo al motor y retorna el resultado.
func (c *Client) Analyze(ctx context.Context, filePath string) (*core.ResumeAnalysis, error) {
	v, err, shared := c.sf.Do(filePath, func() (interface{}, error) {
		return c.doAnalyze(ctx, filePath)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.From(ctx).Debug("scoring: resultado compartido entre requests en vuelo",
			logger.Component("scoring"), logger.String("file_path", filePath))
	}
	return v.(*core.ResumeAnalysis), nil
}

// Ping verifica que el motor responda. Usado por /readyz.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("scoring: build ping: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("scoring: engine unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("scoring: engine status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) doAnalyze(ctx context.Context, filePath string) (*core.ResumeAnalysis, error) {
	body, err := json.Marshal(analyzeRequest{FilePath: filePath})
	if err != nil {
		return nil, fmt.Errorf("scoring: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/analyze/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("scoring: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scoring: engine request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("scoring: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && er.Error != "" {
			return nil, fmt.Errorf("scoring: engine status %d: %s", resp.StatusCode, er.Error)
		}
		return nil, fmt.Errorf("scoring: engine status %d", resp.StatusCode)
	}

	var ar analyzeResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		return nil, fmt.Errorf("scoring: decode response: %w", err)
	}
	if ar.Score < 0 || ar.Score > 100 {
		return nil, fmt.Errorf("scoring: score fuera de rango: %d", ar.Score)
	}

	return &core.ResumeAnalysis{
		Score:           ar.Score,
		Skills:          ar.Skills,
		ExperienceYears: ar.ExperienceYears,
		Education:       ar.Education,
	}, nil
}
