package clincontext

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ComposeRequest is the HTTP request body for context composition. Now is
// optional; when absent the server stamps wall-clock time once per request
// so every time-window check in the invocation shares one instant.
type ComposeRequest struct {
	Patient PatientSummary `json:"patient"`
	Records *RecordSet     `json:"records"`
	Options *Options       `json:"options,omitempty"`
	Now     string         `json:"now,omitempty"`
}

// ComposeResponse carries the raw sections (for UI preview rendering) and
// the formatted text (for prompt inclusion).
type ComposeResponse struct {
	Sections []Section `json:"sections"`
	Text     string    `json:"text"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/context", h.ComposeContext)
	api.POST("/context/preview", h.PreviewContext)
}

// ComposeContext builds and formats the clinical context for one patient.
func (h *Handler) ComposeContext(c echo.Context) error {
	sections, err := h.compose(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ComposeResponse{
		Sections: sections,
		Text:     Format(sections),
	})
}

// PreviewContext returns the raw sections without the formatted text.
func (h *Handler) PreviewContext(c echo.Context) error {
	sections, err := h.compose(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string][]Section{"sections": sections})
}

func (h *Handler) compose(c echo.Context) ([]Section, error) {
	var req ComposeRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Records == nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "records is required")
	}
	opts := DefaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}
	now := time.Now()
	if req.Now != "" {
		t, ok := parseDate(req.Now)
		if !ok {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "now must be an ISO 8601 timestamp")
		}
		now = t
	}
	sections, err := Compose(req.Patient, req.Records, opts, now)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return sections, nil
}
