package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mgi25/chess/services"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(es services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: es,
	}
}

// DownloadHandler обрабатывает GET /api/tournaments/{tournamentID}/export.
// Отдаёт CSV-снимок лиги как attachment.
func (h *ExportHandler) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	body, name, err := h.exportService.BuildSnapshotCSV(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		// Заголовки уже ушли клиенту, остаётся только залогировать
		slog.Error("failed to write csv export", slog.String("error", err.Error()))
	}
}

// UploadHandler обрабатывает POST /api/tournaments/{tournamentID}/export/upload
func (h *ExportHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.exportService.UploadSnapshot(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"key": result.Key,
		"url": result.Location,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
