package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"fintrack/middleware"
	"fintrack/models"
	"fintrack/storage"
)

// TransactionHandler serves the transaction endpoints. All operations are
// scoped to the authenticated user from the request context.
type TransactionHandler struct {
	store *storage.TransactionStore
	log   *logrus.Logger
}

func NewTransactionHandler(store *storage.TransactionStore, log *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{store: store, log: log}
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var in models.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.store.Create(userID, in)
	if err != nil {
		if storage.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.WithError(err).Error("create transaction failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, t)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	p := newQueryParser(r.URL.Query())
	filter := models.TransactionFilter{
		StartDate:     r.URL.Query().Get("startDate"),
		EndDate:       r.URL.Query().Get("endDate"),
		Type:          r.URL.Query().Get("type"),
		CategoryID:    p.int64Ptr("categoryId"),
		SubcategoryID: p.int64Ptr("subcategoryId"),
		AccountID:     p.int64Ptr("accountId"),
		StatusID:      p.int64Ptr("statusId"),
		ModeID:        p.int64Ptr("modeId"),
		PlatformID:    p.int64Ptr("platformId"),
		FinancialYear: r.URL.Query().Get("financialYear"),
		Year:          p.intPtr("year"),
		MonthNumber:   p.intPtr("monthNumber"),
		Week:          p.intPtr("week"),
		MinAmount:     p.floatPtr("minAmount"),
		MaxAmount:     p.floatPtr("maxAmount"),
		IsWeekend:     p.boolPtr("isWeekend"),
		SortBy:        r.URL.Query().Get("sortBy"),
		SortOrder:     r.URL.Query().Get("sortOrder"),
		Limit:         p.intVal("limit"),
		Offset:        p.intVal("offset"),
	}
	if p.badKey != "" {
		respondError(w, http.StatusBadRequest, "Invalid value for parameter: "+p.badKey)
		return
	}

	transactions, err := h.store.FindFiltered(userID, filter)
	if err != nil {
		h.respondStoreError(w, err, "list transactions failed")
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	total, err := h.store.Count(userID, filter)
	if err != nil {
		h.respondStoreError(w, err, "count transactions failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"total":        total,
		"limit":        filter.Limit,
		"offset":       filter.Offset,
	})
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}

	t, err := h.store.FindByIDAndUser(id, userID)
	if err != nil {
		h.respondStoreError(w, err, "get transaction failed")
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}

	respondJSON(w, http.StatusOK, t)
}

func (h *TransactionHandler) GetByTransactionID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	t, err := h.store.FindByTransactionID(mux.Vars(r)["transactionId"], userID)
	if err != nil {
		h.respondStoreError(w, err, "get transaction by txn id failed")
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}

	respondJSON(w, http.StatusOK, t)
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}

	var patch models.TransactionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.store.Update(id, userID, patch)
	if err != nil {
		if storage.IsValidation(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondStoreError(w, err, "update transaction failed")
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}

	respondJSON(w, http.StatusOK, t)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}

	deleted, err := h.store.Delete(id, userID)
	if err != nil {
		h.respondStoreError(w, err, "delete transaction failed")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	p := newQueryParser(r.URL.Query())
	filter := models.SummaryFilter{
		FinancialYear: r.URL.Query().Get("financialYear"),
		Year:          p.intPtr("year"),
		MonthNumber:   p.intPtr("monthNumber"),
		StartDate:     r.URL.Query().Get("startDate"),
		EndDate:       r.URL.Query().Get("endDate"),
	}
	if p.badKey != "" {
		respondError(w, http.StatusBadRequest, "Invalid value for parameter: "+p.badKey)
		return
	}

	summary, err := h.store.Summary(userID, filter)
	if err != nil {
		h.respondStoreError(w, err, "summary failed")
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

type bulkItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BulkCreate inserts each submitted transaction independently. A failing
// item is reported by input position and never aborts its siblings.
func (h *TransactionHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		Transactions []models.TransactionInput `json:"transactions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Transactions) == 0 {
		respondError(w, http.StatusBadRequest, "Transactions array is required")
		return
	}

	created := []models.Transaction{}
	itemErrors := []bulkItemError{}

	for i, in := range req.Transactions {
		t, err := h.store.Create(userID, in)
		if err != nil {
			msg := "Internal server error"
			if storage.IsValidation(err) {
				msg = err.Error()
			} else {
				h.log.WithError(err).WithField("index", i).Error("bulk create item failed")
			}
			itemErrors = append(itemErrors, bulkItemError{Index: i, Error: msg})
			continue
		}
		created = append(created, *t)
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"created":      len(created),
		"failed":       len(itemErrors),
		"transactions": created,
		"errors":       itemErrors,
	})
}

func (h *TransactionHandler) respondStoreError(w http.ResponseWriter, err error, msg string) {
	if storage.IsValidation(err) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.log.WithError(err).Error(msg)
	respondError(w, http.StatusInternalServerError, "Internal server error")
}
