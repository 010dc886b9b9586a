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

type SubcategoryHandler struct {
	store *storage.SubcategoryStore
	log   *logrus.Logger
}

func NewSubcategoryHandler(store *storage.SubcategoryStore, log *logrus.Logger) *SubcategoryHandler {
	return &SubcategoryHandler{store: store, log: log}
}

func (h *SubcategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	subcategories, err := h.store.FindAllByUser(userID)
	if err != nil {
		h.log.WithError(err).Error("list subcategories failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, subcategories)
}

func (h *SubcategoryHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	categoryID, err := strconv.ParseInt(mux.Vars(r)["categoryId"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}

	subcategories, err := h.store.FindByCategory(categoryID, userID)
	if err != nil {
		h.log.WithError(err).Error("list subcategories by category failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, subcategories)
}

func (h *SubcategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var body struct {
		CategoryID int64  `json:"categoryId"`
		Name       string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := h.store.Create(body.CategoryID, userID, body.Name)
	if err != nil {
		if storage.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.WithError(err).Error("create subcategory failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if sub == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}

func (h *SubcategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Subcategory not found")
		return
	}

	var body struct {
		Name       string `json:"name"`
		CategoryID int64  `json:"categoryId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := h.store.Update(id, userID, body.Name, body.CategoryID)
	if err != nil {
		if storage.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.WithError(err).Error("update subcategory failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if sub == nil {
		respondError(w, http.StatusNotFound, "Subcategory not found")
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

func (h *SubcategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Subcategory not found")
		return
	}

	deleted, err := h.store.Delete(id, userID)
	if err != nil {
		h.log.WithError(err).Error("delete subcategory failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Subcategory not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Subcategory deleted"})
}
