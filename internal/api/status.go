package api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GetStatus reports what the portal currently holds.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	h.ledgerMu.Lock()
	booking := h.ledger.Booking()
	entries := len(h.ledger.Entries())
	h.ledgerMu.Unlock()

	success(c, gin.H{
		"referenceRows":      len(h.ref.Rows()),
		"referenceFetchedAt": h.ref.FetchedAt(),
		"thresholdDays":      h.thresholdDays,
		"mileageBooking":     booking,
		"mileageEntries":     entries,
	})
}

// ListUploads returns the recent upload log.
// GET /api/uploads
func (h *Handler) ListUploads(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	logs, err := h.store.ListUploadLogs(limit)
	if err != nil {
		errorResponse(c, 5001, "could not read upload log")
		return
	}
	success(c, logs)
}

// RefreshReference re-downloads the reference sheet. Failure keeps the
// previously loaded rows untouched.
// POST /api/refdata/refresh
func (h *Handler) RefreshReference(c *gin.Context) {
	n, err := h.ref.Refresh(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("reference refresh failed")
		errorResponse(c, 3002, "failed to load reference data")
		return
	}
	success(c, gin.H{"rows": n})
}

// DownloadExport streams a previously generated workbook by token.
// Tokens are one-shot: the file is removed after a successful download.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	dl, ok := h.downloads.get(token)
	if !ok {
		c.String(http.StatusNotFound, "download expired or unknown")
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(dl.fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(dl.filePath)

	h.downloads.delete(token)
	_ = os.Remove(dl.filePath)
}

func buildExportContentDisposition(fileName string) string {
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s",
		fileName, url.PathEscape(fileName))
}
