// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, ok := identity(w, r)
	if !ok {
		return
	}

	var draft models.RecordDraft
	if err := utils.DecodeJSON(r, &draft); err != nil {
		log.Err(err).Str("func", "*Handler.createRecord").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	record, err := h.services.VaultService.Save(r.Context(), ownerID, draft)
	if err != nil {
		writeServiceError(w, r, "*Handler.createRecord", err)
		return
	}

	_, _ = utils.WriteJSON(w, record, http.StatusCreated)
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := identity(w, r)
	if !ok {
		return
	}

	query := models.ListQuery{Filter: r.URL.Query().Get("q")}

	records, err := h.services.VaultService.List(r.Context(), ownerID, query)
	if err != nil {
		writeServiceError(w, r, "*Handler.listRecords", err)
		return
	}
	if records == nil {
		records = []models.VaultRecord{}
	}

	_, _ = utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) revealRecord(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := identity(w, r)
	if !ok {
		return
	}

	secret, err := h.services.VaultService.Reveal(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "*Handler.revealRecord", err)
		return
	}

	_, _ = utils.WriteJSON(w, models.RevealResponse{Secret: secret}, http.StatusOK)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, ok := identity(w, r)
	if !ok {
		return
	}

	var draft models.RecordDraft
	if err := utils.DecodeJSON(r, &draft); err != nil {
		log.Err(err).Str("func", "*Handler.updateRecord").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	record, err := h.services.VaultService.Update(r.Context(), ownerID, chi.URLParam(r, "id"), draft)
	if err != nil {
		writeServiceError(w, r, "*Handler.updateRecord", err)
		return
	}

	_, _ = utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.services.VaultService.Delete(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, "*Handler.deleteRecord", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) exportRecords(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := identity(w, r)
	if !ok {
		return
	}

	resp, err := h.services.BackupService.Export(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, r, "*Handler.exportRecords", err)
		return
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusCreated)
}

// identity returns the owner stored by the auth middleware, writing 401
// when it is missing.
func identity(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID, ok := utils.GetIdentityFromContext(r.Context())
	if !ok || ownerID == "" {
		logger.FromRequest(r).Err(errNoIdentity).Send()
		utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return "", false
	}
	return ownerID, true
}
