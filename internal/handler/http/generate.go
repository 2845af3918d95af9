package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// generate answers with a random secret. An empty body, chunked or not,
// selects the default policy; a non-empty one replaces it entirely.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var policy models.GenerationPolicy
	err := utils.DecodeJSON(r, &policy)
	switch {
	case errors.Is(err, io.EOF):
		policy = models.DefaultGenerationPolicy()
	case err != nil:
		logger.FromRequest(r).Err(err).Str("func", "*Handler.generate").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	resp, err := h.services.VaultService.Generate(r.Context(), policy)
	if err != nil {
		writeServiceError(w, r, "*Handler.generate", err)
		return
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}
