package handlers

import (
	"net/http"

	"github.com/CLDWare/aanwezigheid/config"
	apiResponses "github.com/CLDWare/aanwezigheid/internal/types"
	"github.com/MonkyMars/gecho"
)

// VersionHandler handles version-related requests
type VersionHandler struct {
	config *config.Config
}

// NewVersionHandler creates a new version handler
func NewVersionHandler(cfg *config.Config) *VersionHandler {
	return &VersionHandler{
		config: cfg,
	}
}

// GetVersion
//
// @Summary		Get the api version
// @Description	Get current api name, version and deployment env (production, staging, development)
// @Tags			version
// @Accept			json
// @Produce		json
// @Success		200	{object} apiResponses.BaseResponse{data=apiResponses.Version}
// @Router 			/v		[get]
func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	if err := gecho.Handlers.HandleMethod(w, r, http.MethodGet); err != nil {
		err.Send() // Automatically sends 405 Method Not Allowed
		return
	}

	gecho.Success(w).WithData(apiResponses.Version{
		Name:        h.config.App.Name,
		Version:     h.config.App.Version,
		Environment: h.config.App.Environment,
	}).Send()
}
