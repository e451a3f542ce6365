// handlers.go - Handler wiring and the schema processing endpoint
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/schema-scout/backend/internal/cache"
	"github.com/schema-scout/backend/internal/history"
	"github.com/schema-scout/backend/internal/metrics"
	"github.com/schema-scout/backend/internal/models"
	"github.com/schema-scout/backend/internal/relevance"
	"github.com/schema-scout/backend/internal/schema"
	"github.com/schema-scout/backend/internal/storage"
	"go.uber.org/zap"
)

// Handler holds the dependencies of all API endpoints. Cache and
// history are optional; nil disables the feature.
type Handler struct {
	store            storage.Store
	cache            *cache.ResultCache
	history          *history.Store
	metrics          *metrics.Metrics
	log              *zap.Logger
	version          string
	defaultThreshold float64
	startedAt        time.Time
}

// Dependencies bundles the constructor arguments for Handler.
type Dependencies struct {
	Store            storage.Store
	Cache            *cache.ResultCache
	History          *history.Store
	Metrics          *metrics.Metrics
	Logger           *zap.Logger
	Version          string
	DefaultThreshold float64
}

// NewHandler creates the API handler.
func NewHandler(deps Dependencies) *Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	threshold := deps.DefaultThreshold
	if threshold == 0 {
		threshold = relevance.DefaultThreshold
	}
	return &Handler{
		store:            deps.Store,
		cache:            deps.Cache,
		history:          deps.History,
		metrics:          deps.Metrics,
		log:              log,
		version:          deps.Version,
		defaultThreshold: threshold,
		startedAt:        time.Now(),
	}
}

// HandleProcessSchema runs the full pipeline for one request: save the
// uploaded document, parse it, score tables against the query, and
// respond with the success-flag body the form component expects.
// Processing failures are reported in-band as {"success":false,...};
// only a structurally broken request gets a non-2xx status.
func (h *Handler) HandleProcessSchema(c echo.Context) error {
	start := time.Now()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("no schema file provided", err)
	}

	query := strings.TrimSpace(c.FormValue("query"))
	if query == "" {
		return h.processFailure(c, "query must not be empty")
	}

	format, err := schema.ParseFormat(c.FormValue("output_format"))
	if err != nil {
		return h.processFailure(c, err.Error())
	}

	threshold := h.defaultThreshold
	if raw := c.FormValue("threshold"); raw != "" {
		threshold, err = strconv.ParseFloat(raw, 64)
		if err != nil || threshold < 0 || threshold > 1 {
			return h.processFailure(c, fmt.Sprintf("threshold must be a number in [0,1], got %q", raw))
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		return NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	info, err := h.store.Save(fileHeader.Filename, src)
	if err != nil {
		return NewInternalError("failed to save file", err)
	}

	log := h.log.With(
		zap.String("fileId", info.ID),
		zap.String("file", info.Name),
		zap.String("query", query),
	)

	// Serve from cache when an identical request was processed before.
	ctx := c.Request().Context()
	var cacheKey string
	if h.cache != nil {
		cacheKey = cache.Key(info.Digest, query, string(format), threshold)
		if result, hit, err := h.cache.Get(ctx, cacheKey); err != nil {
			log.Warn("cache lookup failed", zap.Error(err))
		} else if hit {
			if h.metrics != nil {
				h.metrics.CacheHits.Inc()
				h.metrics.RecordOutcome("cached")
			}
			h.store.SetStatus(info.ID, "processed")
			log.Info("served processing result from cache")
			return c.JSON(http.StatusOK, models.ProcessResponse{Success: true, Result: result})
		}
		if h.metrics != nil {
			h.metrics.CacheMisses.Inc()
		}
	}

	doc, err := h.parseStoredSchema(info)
	if err != nil {
		h.store.SetStatus(info.ID, "error")
		log.Warn("schema parse failed", zap.Error(err))
		return h.processFailure(c, err.Error())
	}

	engine := relevance.NewEngine(threshold)
	corrected, result := engine.Process(query, doc)

	h.store.SetStatus(info.ID, "processed")

	elapsed := time.Since(start)
	if h.metrics != nil {
		h.metrics.ProcessingDuration.Observe(elapsed.Seconds())
		h.metrics.RecordOutcome("success")
	}

	h.recordHistory(ctx, info.Name, query, corrected, string(format), threshold, result, elapsed)

	if h.cache != nil {
		if err := h.cache.Set(ctx, cacheKey, result); err != nil {
			log.Warn("cache store failed", zap.Error(err))
		}
	}

	log.Info("schema processed",
		zap.String("correctedQuery", corrected),
		zap.Int("tables", len(result)),
		zap.Duration("elapsed", elapsed),
	)

	return c.JSON(http.StatusOK, models.ProcessResponse{Success: true, Result: result})
}

// processFailure reports an in-band processing error with the
// success-flag response shape.
func (h *Handler) processFailure(c echo.Context, message string) error {
	if h.metrics != nil {
		h.metrics.RecordOutcome("error")
	}
	return c.JSON(http.StatusOK, models.ProcessResponse{Success: false, Error: message})
}

// parseStoredSchema opens a stored document and decodes it using the
// original filename for format sniffing (stored content is keyed by id
// with no extension).
func (h *Handler) parseStoredSchema(info *models.FileInfo) (*models.Schema, error) {
	path, err := h.store.GetFilePath(info.ID)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return schema.Parse(info.Name, f)
}

func (h *Handler) recordHistory(ctx context.Context, file, query, corrected, format string, threshold float64, result models.ProcessingResult, elapsed time.Duration) {
	if h.history == nil {
		return
	}

	var top float64
	for _, match := range result {
		if match.RelevanceScore > top {
			top = match.RelevanceScore
		}
	}

	entry := &models.HistoryEntry{
		SchemaFile:     file,
		Query:          query,
		CorrectedQuery: corrected,
		OutputFormat:   format,
		Threshold:      threshold,
		TableCount:     len(result),
		TopScore:       top,
		DurationMs:     elapsed.Milliseconds(),
	}
	if err := h.history.Record(ctx, entry); err != nil {
		h.log.Warn("failed to record history entry", zap.Error(err))
	}
}
