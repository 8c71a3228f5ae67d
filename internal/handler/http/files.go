package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-totp-vault/internal/utils"
	"github.com/MKhiriev/go-totp-vault/models"
)

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.UploadRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	username, _ := utils.GetUsernameFromContext(ctx)
	if err := h.services.FileService.Upload(ctx, username, req.Filename, req.Data); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeError(w, r, fmt.Errorf("%w: filename", ErrMissingQueryParam))
		return
	}

	username, _ := utils.GetUsernameFromContext(ctx)
	file, err := h.services.FileService.Download(ctx, username, filename)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DownloadResponse{Filename: file.Name, Data: file.Data}, http.StatusOK)
}
