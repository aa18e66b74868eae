package api

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/moalamir52/Operations-Portal/internal/exporter"
	"github.com/moalamir52/Operations-Portal/internal/model"
	"github.com/moalamir52/Operations-Portal/internal/service/reconcile"
	"github.com/moalamir52/Operations-Portal/internal/service/sheet"
)

func (h *Handler) profileFromPath(c *gin.Context) (reconcile.Profile, bool) {
	p, err := reconcile.ProfileByName(c.Param("profile"))
	if err != nil {
		errorResponse(c, 1002, err.Error())
		return reconcile.Profile{}, false
	}
	return p, true
}

// LookupUpload reconciles the reference dataset against an uploaded
// workbook and persists the result set.
// POST /api/lookup/:profile/upload
func (h *Handler) LookupUpload(c *gin.Context) {
	p, ok := h.profileFromPath(c)
	if !ok {
		return
	}

	refRows := h.ref.Rows()
	if len(refRows) == 0 {
		errorResponse(c, 3001, "reference data not loaded, refresh it first")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "no file uploaded")
		return
	}
	defer file.Close()

	uploaded, err := sheet.ReadWorkbook(file)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("lookup upload failed")
		errorResponse(c, 2001, "could not read the uploaded file")
		return
	}

	records, summary := h.engine.Reconcile(refRows, uploaded, p)

	if err := h.store.SaveLookupResults(p.Name, records); err != nil {
		log.Warn().Err(err).Str("profile", p.Name).Msg("could not persist lookup results")
	}
	if err := h.store.InsertUploadLog(header.Filename, p.Name, len(uploaded), summary.Complete); err != nil {
		log.Warn().Err(err).Msg("could not record upload")
	}

	success(c, gin.H{
		"records": records,
		"summary": summary,
	})
}

// GetLookup returns the persisted result set and column selection.
// GET /api/lookup/:profile
func (h *Handler) GetLookup(c *gin.Context) {
	p, ok := h.profileFromPath(c)
	if !ok {
		return
	}

	records, err := h.store.LoadLookupResults(p.Name)
	if err != nil {
		errorResponse(c, 5001, "could not load saved results")
		return
	}
	columns, err := h.store.LoadSelectedColumns(p.Name)
	if err != nil {
		errorResponse(c, 5001, "could not load saved columns")
		return
	}

	summary := summarize(records, p)
	success(c, gin.H{
		"records": records,
		"summary": summary,
		"columns": columns,
	})
}

// summarize recomputes the complete/missing counters for a stored
// result set (collision counts are not persisted).
func summarize(records []model.LookupRecord, p reconcile.Profile) model.LookupSummary {
	fields := p.FieldNames()
	summary := model.LookupSummary{Total: len(records)}
	for _, r := range records {
		if r.Complete(fields) {
			summary.Complete++
		} else {
			summary.MissingData++
		}
	}
	return summary
}

// ClearLookup drops the persisted results and selection.
// DELETE /api/lookup/:profile
func (h *Handler) ClearLookup(c *gin.Context) {
	p, ok := h.profileFromPath(c)
	if !ok {
		return
	}
	if err := h.store.ClearLookup(p.Name); err != nil {
		errorResponse(c, 5002, "could not clear saved results")
		return
	}
	success(c, nil)
}

// SetLookupColumns saves the operator's export column selection.
// PUT /api/lookup/:profile/columns
func (h *Handler) SetLookupColumns(c *gin.Context) {
	p, ok := h.profileFromPath(c)
	if !ok {
		return
	}

	var req struct {
		Columns []string `json:"columns"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 1001, "invalid request body")
		return
	}

	if err := h.store.SaveSelectedColumns(p.Name, req.Columns); err != nil {
		errorResponse(c, 5003, "could not save column selection")
		return
	}
	success(c, nil)
}

// CopyLookupColumns renders the selected columns of the saved results
// as tab-separated text ready for the clipboard.
// POST /api/lookup/:profile/copy
func (h *Handler) CopyLookupColumns(c *gin.Context) {
	p, ok := h.profileFromPath(c)
	if !ok {
		return
	}

	records, err := h.store.LoadLookupResults(p.Name)
	if err != nil || len(records) == 0 {
		errorResponse(c, 4001, "no results to copy")
		return
	}
	columns, err := h.store.LoadSelectedColumns(p.Name)
	if err != nil || len(columns) == 0 {
		errorResponse(c, 4002, "please select columns first")
		return
	}

	success(c, gin.H{"content": exporter.RenderTSV(records, p, columns)})
}

// ExportLookup writes the saved result set to a workbook and returns a
// short-lived download token.
// POST /api/lookup/:profile/export
func (h *Handler) ExportLookup(c *gin.Context) {
	p, ok := h.profileFromPath(c)
	if !ok {
		return
	}

	records, err := h.store.LoadLookupResults(p.Name)
	if err != nil || len(records) == 0 {
		errorResponse(c, 4001, "no data to export")
		return
	}

	f, err := exporter.ExportLookup(records, p)
	if err != nil {
		errorResponse(c, 5004, "could not build export")
		return
	}
	defer f.Close()

	filePath := filepath.Join(h.exportDir, fmt.Sprintf("lookup_%s_%s.xlsx", p.Name, uuid.New().String()))
	if err := f.SaveAs(filePath); err != nil {
		log.Error().Err(err).Msg("could not write export file")
		errorResponse(c, 5004, "could not write export file")
		return
	}

	fileName := fmt.Sprintf("YELO_%s_results.xlsx", p.Name)
	token := h.downloads.put(filePath, fileName, 10*time.Minute)
	success(c, gin.H{"token": token, "fileName": fileName})
}
