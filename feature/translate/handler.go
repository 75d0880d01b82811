package translate

import (
	"errors"

	"broad-babel/core/logger"
	"broad-babel/feature/lookup"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Request is the body accepted by POST /translate.
type Request struct {
	Query lookup.Query  `json:"query" swaggertype:"string"`
	From  lookup.Column `json:"from"`
	To    lookup.Column `json:"to"`
}

// Handler handles HTTP requests for translations.
type Handler struct {
	translator *Translator
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(translator *Translator, logger *zap.Logger) *Handler {
	return &Handler{translator: translator, logger: logger}
}

// RegisterRoutes registers the translate routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/translate")
	group.Get("/:identifier", h.HandleTranslateOne)
	group.Post("/", h.HandleTranslate)
}

// HandleTranslateOne translates a single identifier.
// @Summary Translate Identifier
// @Description Translates one identifier, by default from broad_sample to standard_key.
// @Tags translate
// @Produce json
// @Param identifier path string true "Identifier"
// @Param from query string false "Input column" default(broad_sample)
// @Param to query string false "Output column" default(standard_key)
// @Success 200 {object} map[string]string "Translation"
// @Failure 400 {object} map[string]string "Invalid column"
// @Failure 404 {object} map[string]interface{} "No match"
// @Failure 409 {object} map[string]interface{} "Ambiguous identifier"
// @Failure 500 {object} map[string]string "Data access error"
// @Router /translate/{identifier} [get]
func (h *Handler) HandleTranslateOne(c *fiber.Ctx) error {
	return h.run(c, Request{
		Query: lookup.Single(c.Params("identifier")),
		From:  lookup.Column(c.Query("from", string(lookup.BroadSample))),
		To:    lookup.Column(c.Query("to", string(lookup.StandardKey))),
	})
}

// HandleTranslate translates one identifier or a list of identifiers.
// @Summary Translate Identifiers
// @Description "query" may be a string, which yields {"value": ...}, or an array, which yields {"mapping": {...}}.
// @Tags translate
// @Accept json
// @Produce json
// @Param request body Request true "Translate request"
// @Success 200 {object} map[string]interface{} "Translation"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]interface{} "Some identifiers have no match"
// @Failure 409 {object} map[string]interface{} "Ambiguous identifier"
// @Failure 500 {object} map[string]string "Data access error"
// @Router /translate [post]
func (h *Handler) HandleTranslate(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.From == "" {
		req.From = lookup.BroadSample
	}
	if req.To == "" {
		req.To = lookup.StandardKey
	}
	return h.run(c, req)
}

func (h *Handler) run(c *fiber.Ctx, req Request) error {
	l := logger.WithRayID(h.logger, c)

	result, err := h.translator.Translate(c.Context(), req.Query, req.From, req.To)
	if err == nil {
		return c.JSON(result)
	}

	var countErr *CountMismatchError
	var multiErr *MultipleResultsError
	switch {
	case errors.As(err, &countErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":    err.Error(),
			"expected": countErr.Expected,
			"got":      countErr.Got,
			"missing":  countErr.Missing,
		})
	case errors.As(err, &multiErr):
		l.Warn("Ambiguous identifier", zap.String("identifier", multiErr.Identifier), zap.Strings("values", multiErr.Values))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":      err.Error(),
			"identifier": multiErr.Identifier,
			"values":     multiErr.Values,
		})
	}

	status := lookup.StatusCode(err)
	if status >= fiber.StatusInternalServerError {
		l.Error("Translation failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
