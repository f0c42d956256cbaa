package sandbox

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chartctx/chartctx/internal/clincontext"
)

// RecordResponse is a generated patient plus their full record set, shaped
// so the body can be fed straight back into the compose endpoint.
type RecordResponse struct {
	Patient clincontext.PatientSummary `json:"patient"`
	Records *clincontext.RecordSet     `json:"records"`
}

type Handler struct {
	defaultSeed int64
}

// NewHandler creates the sandbox handler. defaultSeed is used when the
// request carries no seed parameter; zero means derive one from the clock.
func NewHandler(defaultSeed int64) *Handler {
	return &Handler{defaultSeed: defaultSeed}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/sandbox/record", h.GetRecord)
}

// GetRecord generates a synthetic patient record. The seed query parameter
// makes the output reproducible.
func (h *Handler) GetRecord(c echo.Context) error {
	cfg := DefaultSeedConfig()
	cfg.Seed = h.defaultSeed
	if raw := c.QueryParam("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "seed must be an integer")
		}
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	now := time.Now()
	return c.JSON(http.StatusOK, RecordResponse{
		Patient: GeneratePatient(cfg, now),
		Records: GenerateRecordSet(cfg, now),
	})
}
