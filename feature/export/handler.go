package export

import (
	"bytes"
	"errors"

	"broad-babel/core/logger"
	"broad-babel/feature/lookup"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for table exports.
type Handler struct {
	exporter *Exporter
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(exporter *Exporter, logger *zap.Logger) *Handler {
	return &Handler{exporter: exporter, logger: logger}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/export")
	group.Get("/:table", h.HandleExport)
	group.Post("/:table/upload", h.HandleUpload)
}

// HandleExport returns a table as a CSV attachment.
// @Summary Export Table
// @Description Dumps the whole table as CSV with a header row in storage order. NULL values are empty fields.
// @Tags export
// @Produce text/csv
// @Param table path string true "Table name" default(names)
// @Success 200 {string} string "CSV"
// @Failure 400 {object} map[string]string "Invalid table name"
// @Failure 500 {object} map[string]string "Data access error"
// @Router /export/{table} [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	table := c.Params("table")

	var buf bytes.Buffer
	n, err := h.exporter.Write(c.Context(), &buf, table)
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Exported table", zap.String("table", table), zap.Int("records", n))
	c.Attachment(table + ".csv")
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

// HandleUpload exports a table into the configured bucket.
// @Summary Upload Table Export
// @Description Exports the table as CSV and stores it in the bucket, by default as <table>.csv.
// @Tags export
// @Produce json
// @Param table path string true "Table name" default(names)
// @Param object query string false "Object name"
// @Success 200 {object} map[string]interface{} "Upload Info"
// @Failure 400 {object} map[string]string "Invalid table name"
// @Failure 500 {object} map[string]string "Upload failed"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /export/{table}/upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	info, err := h.exporter.Upload(c.Context(), c.Params("table"), c.Query("object"))
	if err != nil {
		return h.fail(c, l, err)
	}

	return c.JSON(fiber.Map{
		"bucket": info.Bucket,
		"object": info.Key,
		"etag":   info.ETag,
		"size":   info.Size,
	})
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := lookup.StatusCode(err)
	if errors.Is(err, ErrStorageDisabled) {
		status = fiber.StatusServiceUnavailable
	}
	if status >= fiber.StatusInternalServerError {
		l.Error("Export failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
