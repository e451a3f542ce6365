// handlers_schemas.go - Schema file management handlers
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/schema-scout/backend/internal/models"
	"github.com/schema-scout/backend/internal/relevance"
	"github.com/schema-scout/backend/internal/schema"
)

// HandleRecentSchemas returns recently uploaded schema documents.
func (h *Handler) HandleRecentSchemas(c echo.Context) error {
	files, err := h.store.List(50)
	if err != nil {
		return NewInternalError("failed to list files", err)
	}

	// Keep only schema documents; the store may hold other uploads.
	schemas := make([]*models.FileInfo, 0, len(files))
	for _, f := range files {
		if schema.SupportedExtension(f.Name) {
			schemas = append(schemas, f)
		}
	}

	if len(schemas) > 20 {
		schemas = schemas[:20]
	}

	return c.JSON(http.StatusOK, schemas)
}

// HandleGetSchema returns metadata for a specific uploaded schema.
func (h *Handler) HandleGetSchema(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	info, err := h.store.Get(id)
	if err != nil {
		return NewNotFoundError("schema", id)
	}

	return c.JSON(http.StatusOK, info)
}

// HandleDeleteSchema deletes an uploaded schema document.
func (h *Handler) HandleDeleteSchema(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	if err := h.store.Delete(id); err != nil {
		return NewNotFoundError("schema", id)
	}

	return c.NoContent(http.StatusNoContent)
}

// HandleSuggest returns ranked query corrections against an uploaded
// schema's vocabulary.
func (h *Handler) HandleSuggest(c echo.Context) error {
	var req suggestRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	info, err := h.store.Get(req.SchemaID)
	if err != nil {
		return NewNotFoundError("schema", req.SchemaID)
	}

	doc, err := h.parseStoredSchema(info)
	if err != nil {
		return NewBadRequestError("schema document could not be parsed", err)
	}

	engine := relevance.NewEngine(h.defaultThreshold)
	suggestions := engine.SuggestCorrections(req.Query, doc)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"query":       req.Query,
		"suggestions": suggestions,
	})
}

// HandleExport re-renders a processed result in the requested format.
// Used by clients that want real YAML output instead of the inline
// JSON body.
func (h *Handler) HandleExport(c echo.Context) error {
	var req exportRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if len(req.Result) == 0 {
		return NewValidationError("result")
	}

	format, err := schema.ParseFormat(req.Format)
	if err != nil {
		return NewBadRequestError(err.Error(), nil)
	}

	content, err := schema.Marshal(req.Result, format)
	if err != nil {
		return NewInternalError("failed to serialize result", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="processed_schema.`+string(format)+`"`)
	return c.Blob(http.StatusOK, "text/plain", []byte(content))
}

// HandleHistory returns recent processing requests.
func (h *Handler) HandleHistory(c echo.Context) error {
	if h.history == nil {
		return c.JSON(http.StatusOK, []models.HistoryEntry{})
	}

	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return NewValidationError("limit")
		}
		limit = n
	}

	entries, err := h.history.Recent(c.Request().Context(), limit)
	if err != nil {
		return NewInternalError("failed to query history", err)
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	return c.JSON(http.StatusOK, entries)
}

// Request types

type suggestRequest struct {
	Query    string `json:"query"`
	SchemaID string `json:"schema_id"`
}

func (r *suggestRequest) validate() error {
	if r.Query == "" {
		return NewValidationError("query")
	}
	if r.SchemaID == "" {
		return NewValidationError("schema_id")
	}
	return nil
}

type exportRequest struct {
	Result models.ProcessingResult `json:"result"`
	Format string                  `json:"format"`
}
