package lookup

import (
	"errors"
	"strings"

	"broad-babel/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Request is the body accepted by POST /lookup.
type Request struct {
	Query         Query    `json:"query" swaggertype:"string"`
	InputColumn   Column   `json:"input_column"`
	OutputColumns []Column `json:"output_columns"`
	Operator      Operator `json:"operator"`
}

// Response carries the matching rows.
type Response struct {
	Count int   `json:"count"`
	Rows  []Row `json:"rows"`
}

// Handler handles HTTP requests for raw lookups.
type Handler struct {
	engine *Engine
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(engine *Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// RegisterRoutes registers the lookup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/lookup", h.HandleLookup)
	app.Post("/lookup", h.HandleLookupBody)
}

// HandleLookup runs a lookup described by query parameters.
// @Summary Lookup
// @Description Selects the output columns of every row whose input column matches. Repeat q for a set-membership lookup.
// @Tags lookup
// @Produce json
// @Param q query []string true "Identifier(s)" collectionFormat(multi)
// @Param in query string false "Input column" default(broad_sample)
// @Param out query []string false "Output column(s)" collectionFormat(multi)
// @Param op query string false "Operator (=, !=, LIKE, GLOB, IN)"
// @Success 200 {object} Response
// @Failure 400 {object} map[string]string "Invalid column, operator or query"
// @Failure 500 {object} map[string]string "Data access error"
// @Router /lookup [get]
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	args := c.Context().QueryArgs()

	var values []string
	for _, v := range args.PeekMulti("q") {
		values = append(values, string(v))
	}
	if len(values) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing q parameter"})
	}
	q := Single(values[0])
	if len(values) > 1 {
		q = Many(values...)
	}

	var outputs []Column
	for _, v := range args.PeekMulti("out") {
		for _, name := range strings.Split(string(v), ",") {
			if name = strings.TrimSpace(name); name != "" {
				outputs = append(outputs, Column(name))
			}
		}
	}
	if len(outputs) == 0 {
		outputs = []Column{StandardKey}
	}

	return h.run(c, Request{
		Query:         q,
		InputColumn:   Column(c.Query("in", string(BroadSample))),
		OutputColumns: outputs,
		Operator:      Operator(c.Query("op")),
	})
}

// HandleLookupBody runs a lookup described by a JSON body.
// @Summary Lookup (JSON)
// @Description Same as GET /lookup; "query" may be a string or an array of strings.
// @Tags lookup
// @Accept json
// @Produce json
// @Param request body Request true "Lookup request"
// @Success 200 {object} Response
// @Failure 400 {object} map[string]string "Invalid column, operator or query"
// @Failure 500 {object} map[string]string "Data access error"
// @Router /lookup [post]
func (h *Handler) HandleLookupBody(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.InputColumn == "" {
		req.InputColumn = BroadSample
	}
	return h.run(c, req)
}

func (h *Handler) run(c *fiber.Ctx, req Request) error {
	l := logger.WithRayID(h.logger, c)

	rows, err := h.engine.RunQuery(c.Context(), req.Query, req.InputColumn, req.OutputColumns, req.Operator)
	if err != nil {
		status := StatusCode(err)
		if status >= fiber.StatusInternalServerError {
			l.Error("Lookup failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(Response{Count: len(rows), Rows: rows})
}

// StatusCode maps lookup errors to HTTP status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidColumn),
		errors.Is(err, ErrInvalidOperator),
		errors.Is(err, ErrInvalidQuery):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
