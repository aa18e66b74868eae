package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/moalamir52/Operations-Portal/internal/model"
	"github.com/moalamir52/Operations-Portal/internal/service/sheet"
	"github.com/moalamir52/Operations-Portal/internal/service/threshold"
)

// ReminderUpload ingests a closed-contracts export and returns the rows
// that crossed the reminder threshold today.
// POST /api/reminder/upload
func (h *Handler) ReminderUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "no file uploaded")
		return
	}
	defer file.Close()

	rows, err := sheet.ReadWorkbook(file)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("reminder upload failed")
		errorResponse(c, 2001, "could not read the uploaded file")
		return
	}

	days := h.thresholdDays
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			days = n
		}
	}

	classifier := threshold.Classifier{
		DateColumn:    "Drop-off Date",
		ThresholdDays: days,
		Century:       h.century,
	}
	res := classifier.Classify(rows, h.now())

	due := make([]model.ReminderRow, 0, len(res.Matches))
	for _, m := range res.Matches {
		due = append(due, model.ReminderRow{
			Contract: m.Row.Get("Contract No."),
			Customer: m.Row.Get("Customer"),
			DropDate: m.Date.DMY(),
			Days:     m.Days,
			ClosedBy: m.Row.Get("Closed By"),
			Branch:   m.Row.Get("Pick-up Branch"),
		})
	}

	if err := h.store.InsertUploadLog(header.Filename, "reminder", len(rows), len(due)); err != nil {
		log.Warn().Err(err).Msg("could not record upload")
	}

	success(c, gin.H{
		"thresholdDays": days,
		"totalRows":     len(rows),
		"excludedRows":  res.Excluded,
		"due":           due,
	})
}
