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

type CategoryHandler struct {
	store *storage.CategoryStore
	log   *logrus.Logger
}

func NewCategoryHandler(store *storage.CategoryStore, log *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{store: store, log: log}
}

type categoryBody struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Budget *float64 `json:"budget"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var err error
	var categories interface{}
	if r.URL.Query().Get("includeInactive") == "true" {
		categories, err = h.store.FindAllByUserIncludingInactive(userID)
	} else {
		categories, err = h.store.FindAllByUser(userID)
	}
	if err != nil {
		h.log.WithError(err).Error("list categories failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var body categoryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.store.Create(userID, body.Name, body.Type, body.Budget)
	if err != nil {
		if storage.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.WithError(err).Error("create category failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	var body categoryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.store.Update(id, userID, body.Name, body.Type, body.Budget)
	if err != nil {
		if storage.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.WithError(err).Error("update category failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if c == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	deleted, err := h.store.Delete(id, userID)
	if err != nil {
		h.log.WithError(err).Error("delete category failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
