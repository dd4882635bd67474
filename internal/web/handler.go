package web

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jandita-bot/internal/calendar"
	"jandita-bot/internal/models"
	"jandita-bot/internal/service"
	"jandita-bot/internal/view"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	planService   service.PlanService
	exportService service.ExportService
	logger        *zap.Logger
}

func NewHandler(
	planService service.PlanService,
	exportService service.ExportService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		planService:   planService,
		exportService: exportService,
		logger:        logger,
	}
}

type weekJSON struct {
	WeekStart string  `json:"week_start"`
	WeekEnd   string  `json:"week_end"`
	Label     string  `json:"label"`
	Familia   *string `json:"familia"`
	Turno     *string `json:"turno"`
}

type planJSON struct {
	View  string     `json:"view"`
	Today string     `json:"today"`
	Weeks []weekJSON `json:"weeks"`
}

// NewRouter rutas de solo lectura; las ediciones pasan por el bot
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(logger))
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	api.GET("/plan", h.PlanAPI)
	api.GET("/plan/export", h.ExportAPI)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PlanAPI GET /api/plan?view=windowed|full
func (h *Handler) PlanAPI(c *gin.Context) {
	mode, ok := parseMode(c.DefaultQuery("view", view.ModeWindowed.String()))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "view debe ser windowed o full"})
		return
	}

	records, err := h.planService.Refresh(c.Request.Context())
	if err != nil {
		h.logger.Error("❌ Error cargando la planificación", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "planificación no disponible"})
		return
	}

	today := h.planService.Today()
	visible := view.Filter(records, mode, today)

	resp := planJSON{
		View:  mode.String(),
		Today: today.Format(calendar.KeyLayout),
		Weeks: make([]weekJSON, 0, len(visible)),
	}
	for _, r := range visible {
		resp.Weeks = append(resp.Weeks, toWeekJSON(r))
	}

	c.JSON(http.StatusOK, resp)
}

// ExportAPI GET /api/plan/export
func (h *Handler) ExportAPI(c *gin.Context) {
	records, err := h.planService.Refresh(c.Request.Context())
	if err != nil {
		h.logger.Error("❌ Error cargando la planificación", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "planificación no disponible"})
		return
	}

	data, err := h.exportService.Export(records)
	if err != nil {
		h.logger.Error("❌ Error generando xlsx", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo generar el archivo"})
		return
	}

	filename := "planificacion-" + time.Now().Format(calendar.KeyLayout) + ".xlsx"
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func parseMode(s string) (view.Mode, bool) {
	switch s {
	case view.ModeWindowed.String():
		return view.ModeWindowed, true
	case view.ModeFull.String():
		return view.ModeFull, true
	}
	return view.ModeWindowed, false
}

func toWeekJSON(r models.WeekRecord) weekJSON {
	return weekJSON{
		WeekStart: r.Key(),
		WeekEnd:   r.WeekEnd().Format(calendar.KeyLayout),
		Label:     view.WeekLabel(r),
		Familia:   r.Familia,
		Turno:     r.Turno,
	}
}
