package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"fintrack/middleware"
	"fintrack/storage"
)

// MasterHandler serves the endpoints of one plain master registry
// (accounts, statuses, modes, platforms). One instance per registry.
type MasterHandler struct {
	store *storage.MasterStore
	label string // singular display name, e.g. "Account"
	log   *logrus.Logger
}

func NewMasterHandler(store *storage.MasterStore, label string, log *logrus.Logger) *MasterHandler {
	return &MasterHandler{store: store, label: label, log: log}
}

func (h *MasterHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	masters, err := h.store.FindAllByUser(userID)
	if err != nil {
		h.log.WithError(err).Error("list masters failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, masters)
}

func (h *MasterHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.store.Create(userID, body.Name)
	if err != nil {
		if storage.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.WithError(err).Error("create master failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

func (h *MasterHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, h.label+" not found")
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := h.store.Update(id, userID, body.Name)
	if err != nil {
		if storage.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.WithError(err).Error("update master failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if m == nil {
		respondError(w, http.StatusNotFound, h.label+" not found")
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *MasterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, h.label+" not found")
		return
	}

	deleted, err := h.store.Delete(id, userID)
	if err != nil {
		h.log.WithError(err).Error("delete master failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, h.label+" not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": h.label + " deleted"})
}
