package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/moalamir52/Operations-Portal/internal/config"
	"github.com/moalamir52/Operations-Portal/internal/dates"
	"github.com/moalamir52/Operations-Portal/internal/service/ledger"
	"github.com/moalamir52/Operations-Portal/internal/service/refdata"
	"github.com/moalamir52/Operations-Portal/internal/service/reconcile"
	"github.com/moalamir52/Operations-Portal/internal/store"
)

// Handler wires the portal API: reminder uploads, contract/fleet
// lookups, the mileage ledger and exports.
type Handler struct {
	store *store.Store
	ref   *refdata.Service

	engine        reconcile.Engine
	century       dates.CenturyPolicy
	thresholdDays int

	ledger   *ledger.Ledger
	ledgerMu sync.Mutex

	downloads *exportDownloadStore
	exportDir string

	now func() dates.Date
}

// NewHandler creates the API handler and restores the persisted mileage
// snapshot, if any.
func NewHandler(st *store.Store, ref *refdata.Service, cfg *config.AppConfig, exportDir string) *Handler {
	century := dates.ParseCenturyPolicy(cfg.Business.CenturyPolicy)

	h := &Handler{
		store:         st,
		ref:           ref,
		engine:        reconcile.Engine{Century: century},
		century:       century,
		thresholdDays: cfg.Business.ReminderThresholdDays,
		ledger:        ledger.New(cfg.Business.MonthlyAllowanceKm, nil),
		downloads:     newExportDownloadStore(),
		exportDir:     exportDir,
		now:           dates.Today,
	}

	// A persisted settings change wins over config.toml.
	if v, err := st.GetConfigInt(configKeyThresholdDays); err == nil && v >= 0 {
		h.thresholdDays = v
	}

	snap, err := st.LoadMileageSnapshot()
	if err != nil {
		log.Warn().Err(err).Msg("could not load mileage snapshot")
	} else if snap != nil {
		h.ledger.Restore(*snap)
		log.Info().Str("booking", snap.Booking).Int("entries", len(snap.Entries)).Msg("mileage snapshot restored")
	}

	return h
}

// RegisterRoutes mounts the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)
	router.GET("/uploads", h.ListUploads)
	router.GET("/settings", h.GetSettings)
	router.PUT("/settings", h.UpdateSettings)

	// Reference sheet
	router.POST("/refdata/refresh", h.RefreshReference)

	// Reminder view
	router.POST("/reminder/upload", h.ReminderUpload)

	// Lookup views (contracts / fleet)
	router.POST("/lookup/:profile/upload", h.LookupUpload)
	router.GET("/lookup/:profile", h.GetLookup)
	router.DELETE("/lookup/:profile", h.ClearLookup)
	router.PUT("/lookup/:profile/columns", h.SetLookupColumns)
	router.POST("/lookup/:profile/copy", h.CopyLookupColumns)
	router.POST("/lookup/:profile/export", h.ExportLookup)

	// Mileage view
	router.GET("/mileage", h.GetMileage)
	router.POST("/mileage/booking", h.SetMileageBooking)
	router.POST("/mileage/entries", h.AddMileageEntry)
	router.POST("/mileage/reset", h.ResetMileage)
	router.GET("/mileage/summary", h.GetMileageSummary)
	router.POST("/mileage/export", h.ExportMileage)

	// Export downloads
	router.GET("/export/download/:token", h.DownloadExport)
}

// Response is the common API envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}
