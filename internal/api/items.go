package api

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/matickr/katalog/internal/catalog"
	"github.com/matickr/katalog/internal/media"
	"github.com/matickr/katalog/internal/model"
)

// maxFormSize bounds a multipart request body: the image cap plus headroom
// for the text fields and multipart framing.
const maxFormSize = media.MaxUploadSize + 1<<20

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	Service *catalog.Service
}

type deleteItemRequest struct {
	ID int64 `json:"id"`
}

// List handles GET /api/items/get.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to retrieve items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Add handles POST /api/items/add (multipart form).
func (h *ItemsHandler) Add(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		failure(w, http.StatusBadRequest, "invalid multipart form or request too large")
		return
	}

	in := catalog.CreateInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
	}

	item, err := h.Service.Create(r.Context(), in, formFile(r, "itemImage"))
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, mutationResponse{
		Success: true,
		Message: "Item added successfully!",
		Item:    item,
	})
}

// Update handles POST /api/items/update (multipart form).
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		failure(w, http.StatusBadRequest, "invalid multipart form or request too large")
		return
	}

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		failure(w, http.StatusBadRequest, "invalid item id")
		return
	}

	in := catalog.UpdateInput{
		Name:        formValue(r, "name"),
		Description: formValue(r, "description"),
		Price:       formValue(r, "price"),
	}
	// An explicitly empty existingImageUrl means the caller removed the image.
	if existing := formValue(r, "existingImageUrl"); existing != nil && *existing == "" {
		in.RemoveImage = true
	}

	item, err := h.Service.Update(r.Context(), id, in, formFile(r, "itemImage"))
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, mutationResponse{
		Success: true,
		Message: "Item updated successfully!",
		Item:    item,
	})
}

// Delete handles DELETE /api/items/delete (JSON body).
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteItemRequest
	if err := decodeJSON(r, &req); err != nil {
		failure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID <= 0 {
		failure(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.Service.Delete(r.Context(), req.ID); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, mutationResponse{
		Success: true,
		Message: "Item deleted successfully!",
	})
}

// formValue returns a pointer to the form field's value, or nil if the field
// was not part of the request. Absence and empty string are distinct for
// update semantics.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// formFile returns the uploaded file header for the field, or nil if absent.
func formFile(r *http.Request, key string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[key]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
