package clone

import (
	"errors"

	"asset-cloner/core/game"
	"asset-cloner/core/logger"
	"asset-cloner/feature/closure"
	"asset-cloner/feature/records"
	"asset-cloner/feature/rename"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RecordView is the JSON view of a table record.
type RecordView struct {
	Kind   records.Kind    `json:"kind"`
	Name   string          `json:"name"`
	Source string          `json:"source"`
	Fields []records.Field `json:"fields"`
}

// Handler handles HTTP requests for clones.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the clone routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/records/:kind/:name", h.HandleGetRecord)
	app.Get("/closures/:kind/:name", h.HandleGetClosure)
	app.Post("/clones", h.HandleCreateClone)
	app.Get("/clones", h.HandleListClones)
	app.Post("/dataset/reload", h.HandleReloadDataset)
}

// HandleGetRecord returns one table record.
// @Summary Get Record
// @Description Get a table record by kind and name.
// @Tags records
// @Security ApiKeyAuth
// @Produce json
// @Param kind path string true "Record kind (e.g. 'costume', 'item3d')"
// @Param name path string true "Record name"
// @Success 200 {object} RecordView "Record"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /records/{kind}/{name} [get]
func (h *Handler) HandleGetRecord(c *fiber.Ctx) error {
	kind, err := records.ParseKind(c.Params("kind"))
	if err != nil {
		return h.fail(c, err)
	}
	rec, err := h.service.Record(c.Context(), kind, c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(RecordView{Kind: rec.Kind, Name: rec.Name(), Source: rec.Source, Fields: rec.Fields()})
}

// HandleGetClosure returns the records a clone would copy.
// @Summary Get Closure
// @Description Resolve the closure of a costume or skin for a clone kind.
// @Tags clones
// @Security ApiKeyAuth
// @Produce json
// @Param kind path string true "Clone kind (weapon, costume, skin)"
// @Param name path string true "Costume or skin name"
// @Success 200 {object} closure.Summary "Closure"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /closures/{kind}/{name} [get]
func (h *Handler) HandleGetClosure(c *fiber.Ctx) error {
	kind, err := ParseKind(c.Params("kind"))
	if err != nil {
		return h.fail(c, err)
	}
	cl, err := h.service.Closure(c.Context(), kind, c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cl.Summary())
}

// HandleCreateClone runs a clone.
// @Summary Create Clone
// @Description Clone a costume or skin into a new asset under the output root.
// @Tags clones
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body Request true "Clone request"
// @Success 201 {object} Report "Clone report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]string "Clone aborted"
// @Router /clones [post]
func (h *Handler) HandleCreateClone(c *fiber.Ctx) error {
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	kind, err := ParseKind(string(req.Kind))
	if err != nil {
		return h.fail(c, err)
	}
	req.Kind = kind

	l := logger.WithRayID(h.service.logger, c)
	l.Info("Clone requested", zap.String("source", req.Source), zap.String("name", req.Name), zap.String("kind", string(kind)))

	report, err := h.service.Clone(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// HandleListClones lists recent clone runs.
// @Summary List Clones
// @Description List recent clone runs from the run ledger.
// @Tags clones
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Maximum number of runs" default(20)
// @Success 200 {array} history.CloneRun "Runs"
// @Failure 503 {object} map[string]string "Ledger unavailable"
// @Router /clones [get]
func (h *Handler) HandleListClones(c *fiber.Ctx) error {
	runs, err := h.service.Runs(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(runs)
}

// HandleReloadDataset rebuilds the game dataset.
// @Summary Reload Dataset
// @Description Re-index game data, tables and strings from disk.
// @Tags dataset
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} map[string]interface{} "Dataset stats"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /dataset/reload [post]
func (h *Handler) HandleReloadDataset(c *fiber.Ctx) error {
	ds, err := h.service.Reload(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	counts := fiber.Map{}
	for _, k := range records.Kinds {
		counts[string(k)] = ds.Records.Len(k)
	}
	return c.JSON(fiber.Map{
		"status":    "reloaded",
		"loaded_at": ds.LoadedAt,
		"records":   counts,
		"languages": len(ds.Strings.Languages()),
	})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusOf(err error) int {
	var nf *closure.NotFoundError
	switch {
	case errors.As(err, &nf):
		return fiber.StatusNotFound
	case errors.Is(err, ErrUnknownKind), errors.Is(err, records.ErrUnknownKind), errors.Is(err, rename.ErrEmptyName),
		errors.Is(err, ErrInvalidName), errors.Is(err, game.ErrOutputEscape):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNoLedger):
		return fiber.StatusServiceUnavailable
	case isAbort(err):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}
