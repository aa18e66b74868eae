package api

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/moalamir52/Operations-Portal/internal/dates"
	"github.com/moalamir52/Operations-Portal/internal/exporter"
	"github.com/moalamir52/Operations-Portal/internal/model"
)

// persistLedger saves the current ledger snapshot; the caller must hold
// ledgerMu.
func (h *Handler) persistLedger() {
	if err := h.store.SaveMileageSnapshot(h.ledger.Snapshot()); err != nil {
		log.Warn().Err(err).Msg("could not persist mileage snapshot")
	}
}

// GetMileage returns the full mileage view state.
// GET /api/mileage
func (h *Handler) GetMileage(c *gin.Context) {
	h.ledgerMu.Lock()
	defer h.ledgerMu.Unlock()

	success(c, gin.H{
		"snapshot": h.ledger.Snapshot(),
		"summary":  h.ledger.Summary(nil),
	})
}

// SetMileageBooking switches the governing booking. A change clears all
// entries and unlocks the start date; the reference sheet, when it
// knows the booking, supplies the contract info block and locks the
// pickup date.
// POST /api/mileage/booking
func (h *Handler) SetMileageBooking(c *gin.Context) {
	var req struct {
		Booking string `json:"booking"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 1001, "invalid request body")
		return
	}

	h.ledgerMu.Lock()
	defer h.ledgerMu.Unlock()

	row, found := h.ref.FindBooking(req.Booking)
	var info *model.ContractInfo
	if found {
		info = &model.ContractInfo{
			Booking:  row.Get("Booking Number"),
			Contract: row.Get("Contract No."),
			Customer: row.Get("Customer"),
		}
	}

	h.ledger.SetBooking(req.Booking, info)

	pickupLocked := false
	if found {
		if d, err := dates.Normalize(row.Get("Pick-up Date"), h.century); err == nil {
			h.ledger.LockStartDate(d)
			pickupLocked = true
		}
	}

	h.persistLedger()

	message := "success"
	if !found && req.Booking != "" {
		// A miss is not an error: the operator can still track manually.
		message = "no data found for the entered number"
	}
	c.JSON(200, Response{
		Code:    0,
		Message: message,
		Data: gin.H{
			"snapshot":     h.ledger.Snapshot(),
			"found":        found,
			"pickupLocked": pickupLocked,
		},
	})
}

// AddMileageEntry validates and records one odometer interval.
// POST /api/mileage/entries
func (h *Handler) AddMileageEntry(c *gin.Context) {
	var req struct {
		Date string `json:"date"`
		Out  string `json:"out"`
		In   string `json:"in"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 1001, "invalid request body")
		return
	}

	h.ledgerMu.Lock()
	defer h.ledgerMu.Unlock()

	entry, verr := h.ledger.AddEntry(req.Date, req.Out, req.In)
	if verr != nil {
		// Inline rejection: the operator corrects and retries.
		c.JSON(200, Response{
			Code:    4100,
			Message: verr.Message,
			Data:    gin.H{"kind": verr.Kind},
		})
		return
	}

	h.persistLedger()
	success(c, gin.H{
		"entry":   entry,
		"summary": h.ledger.Summary(nil),
	})
}

// ResetMileage wipes the ledger and its persisted snapshot.
// POST /api/mileage/reset
func (h *Handler) ResetMileage(c *gin.Context) {
	h.ledgerMu.Lock()
	defer h.ledgerMu.Unlock()

	h.ledger.SetBooking("", nil)
	if err := h.store.ClearMileageSnapshot(); err != nil {
		log.Warn().Err(err).Msg("could not clear mileage snapshot")
	}
	success(c, nil)
}

// GetMileageSummary derives the accrual report, optionally against an
// explicit end date.
// GET /api/mileage/summary?end=YYYY-MM-DD
func (h *Handler) GetMileageSummary(c *gin.Context) {
	var endOverride *dates.Date
	if v := c.Query("end"); v != "" {
		d, err := dates.ParseISO(v)
		if err != nil {
			errorResponse(c, 1003, "end must be YYYY-MM-DD")
			return
		}
		endOverride = &d
	}

	h.ledgerMu.Lock()
	defer h.ledgerMu.Unlock()

	success(c, h.ledger.Summary(endOverride))
}

// ExportMileage writes the styled mileage report workbook and returns a
// download token.
// POST /api/mileage/export
func (h *Handler) ExportMileage(c *gin.Context) {
	h.ledgerMu.Lock()
	snap := h.ledger.Snapshot()
	summary := h.ledger.Summary(nil)
	h.ledgerMu.Unlock()

	f, err := exporter.ExportMileage(snap, summary)
	if err != nil {
		errorResponse(c, 5004, "could not build export")
		return
	}
	defer f.Close()

	filePath := filepath.Join(h.exportDir, fmt.Sprintf("mileage_%s.xlsx", uuid.New().String()))
	if err := f.SaveAs(filePath); err != nil {
		log.Error().Err(err).Msg("could not write export file")
		errorResponse(c, 5004, "could not write export file")
		return
	}

	fileName := exporter.MileageFilename(snap)
	token := h.downloads.put(filePath, fileName, 10*time.Minute)
	success(c, gin.H{"token": token, "fileName": fileName})
}
