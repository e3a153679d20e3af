package expenses

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type categoryNameRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "categories.list")
	if !ok {
		return
	}

	categories, err := h.Categories.ListCategories(r.Context(), accountID)
	if err != nil {
		h.writeError(w, "categories.list: list failed", err, "user_id", userID, "account_id", accountID)
		return
	}

	response := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "categories.create")
	if !ok {
		return
	}

	var req categoryNameRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, "categories.create: invalid request", err, "user_id", userID, "account_id", accountID)
		return
	}

	created, err := h.Categories.CreateCategory(r.Context(), accountID, req.Name)
	if err != nil {
		h.writeError(w, "categories.create: create failed", err, "user_id", userID, "account_id", accountID)
		return
	}

	writeJSON(w, http.StatusCreated, categoryResponse{ID: created.ID, Name: created.Name, Subcategories: []subcategoryResponse{}})
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "categories.update")
	if !ok {
		return
	}

	var req categoryNameRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, "categories.update: invalid request", err, "user_id", userID, "account_id", accountID)
		return
	}

	categoryID := chi.URLParam(r, "id")
	updated, err := h.Categories.UpdateCategory(r.Context(), accountID, categoryID, req.Name)
	if err != nil {
		h.writeError(w, "categories.update: update failed", err, "user_id", userID, "account_id", accountID, "category_id", categoryID)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{ID: updated.ID, Name: updated.Name, Subcategories: []subcategoryResponse{}})
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "categories.delete")
	if !ok {
		return
	}

	categoryID := chi.URLParam(r, "id")
	if err := h.Categories.DeleteCategory(r.Context(), accountID, categoryID); err != nil {
		h.writeError(w, "categories.delete: delete failed", err, "user_id", userID, "account_id", accountID, "category_id", categoryID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "subcategories.create")
	if !ok {
		return
	}

	var req categoryNameRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.writeError(w, "subcategories.create: invalid request", err, "user_id", userID, "account_id", accountID)
		return
	}

	categoryID := chi.URLParam(r, "id")
	created, err := h.Categories.CreateSubcategory(r.Context(), accountID, categoryID, req.Name)
	if err != nil {
		h.writeError(w, "subcategories.create: create failed", err, "user_id", userID, "account_id", accountID, "category_id", categoryID)
		return
	}

	writeJSON(w, http.StatusCreated, toSubcategoryResponse(*created))
}

func (h *Handlers) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	userID, accountID, ok := h.scope(w, r, "subcategories.delete")
	if !ok {
		return
	}

	subcategoryID := chi.URLParam(r, "id")
	if err := h.Categories.DeleteSubcategory(r.Context(), accountID, subcategoryID); err != nil {
		h.writeError(w, "subcategories.delete: delete failed", err, "user_id", userID, "account_id", accountID, "subcategory_id", subcategoryID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
