package http

import (
	"net/http"

	"github.com/MKhiriev/go-totp-vault/internal/utils"
	"github.com/MKhiriev/go-totp-vault/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{
		Status:  "ok",
		Version: h.services.AppInfoService.GetAppVersion(r.Context()),
	}, http.StatusOK)
}
