package handlers

import (
	"errors"
	"net/http"

	"github.com/CleanArchitectureTutorials/PackAndGo/internal/auth"
	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/dto"
	"github.com/CleanArchitectureTutorials/PackAndGo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListHandler struct {
	svc *service.ListService
}

func NewListHandler(svc *service.ListService) *ListHandler {
	return &ListHandler{svc: svc}
}

// Create godoc
// @Summary      Create a packing list
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateListRequest  true  "List body"
// @Success      201   {object}  dto.ListResponse
// @Failure      400   {object}  map[string]string
// @Router       /lists [post]
func (h *ListHandler) Create(c *gin.Context) {
	var req dto.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listToResponse(l))
}

// List godoc
// @Summary      List all packing lists of the current user
// @Tags         lists
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListsResponse
// @Failure      500  {object}  map[string]string
// @Router       /lists [get]
func (h *ListHandler) List(c *gin.Context) {
	lists, err := h.svc.Lists(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.ListResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, listToResponse(l))
	}
	c.JSON(http.StatusOK, dto.ListsResponse{Lists: out})
}

// GetByID godoc
// @Summary      Get a packing list by ID
// @Tags         lists
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "List ID"
// @Success      200  {object}  dto.ListResponse
// @Failure      404  {object}  map[string]string
// @Router       /lists/{id} [get]
func (h *ListHandler) GetByID(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	l, err := h.svc.Get(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listToResponse(l))
}

// Rename godoc
// @Summary      Rename a packing list
// @Tags         lists
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "List ID"
// @Param        body  body      dto.RenameListRequest  true  "New name"
// @Success      200   {object}  dto.ListResponse
// @Failure      404   {object}  map[string]string
// @Router       /lists/{id} [patch]
func (h *ListHandler) Rename(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req dto.RenameListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l, err := h.svc.Rename(c.Request.Context(), auth.UserIDFromContext(c), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listToResponse(l))
}

// Delete godoc
// @Summary      Delete a packing list
// @Tags         lists
// @Security     CookieAuth
// @Param        id   path  string  true  "List ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /lists/{id} [delete]
func (h *ListHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddItem godoc
// @Summary      Add an item to a list
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "List ID"
// @Param        body  body      dto.AddItemRequest  true  "Item body"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /lists/{id}/items [post]
func (h *ListHandler) AddItem(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	it, err := h.svc.AddItem(c.Request.Context(), auth.UserIDFromContext(c), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, itemToResponse(it))
}

// RemoveItem godoc
// @Summary      Remove an item from a list
// @Tags         items
// @Produce      json
// @Security     CookieAuth
// @Param        id      path  string  true  "List ID"
// @Param        itemId  path  string  true  "Item ID"
// @Success      200  {object}  dto.ListResponse
// @Failure      404  {object}  map[string]string
// @Router       /lists/{id}/items/{itemId} [delete]
func (h *ListHandler) RemoveItem(c *gin.Context) {
	listID, itemID, ok := parseListItemIDs(c)
	if !ok {
		return
	}
	l, err := h.svc.RemoveItem(c.Request.Context(), auth.UserIDFromContext(c), listID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listToResponse(l))
}

// RenameItem godoc
// @Summary      Rename an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id      path  string  true  "List ID"
// @Param        itemId  path  string  true  "Item ID"
// @Param        body    body  dto.RenameItemRequest  true  "New name"
// @Success      200  {object}  dto.ListResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /lists/{id}/items/{itemId} [patch]
func (h *ListHandler) RenameItem(c *gin.Context) {
	listID, itemID, ok := parseListItemIDs(c)
	if !ok {
		return
	}
	var req dto.RenameItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l, err := h.svc.RenameItem(c.Request.Context(), auth.UserIDFromContext(c), listID, itemID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listToResponse(l))
}

// PackItem godoc
// @Summary      Mark an item as packed
// @Tags         items
// @Produce      json
// @Security     CookieAuth
// @Param        id      path  string  true  "List ID"
// @Param        itemId  path  string  true  "Item ID"
// @Success      200  {object}  dto.ListResponse
// @Failure      404  {object}  map[string]string
// @Router       /lists/{id}/items/{itemId}/pack [post]
func (h *ListHandler) PackItem(c *gin.Context) {
	listID, itemID, ok := parseListItemIDs(c)
	if !ok {
		return
	}
	l, err := h.svc.PackItem(c.Request.Context(), auth.UserIDFromContext(c), listID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listToResponse(l))
}

// UnpackItem godoc
// @Summary      Mark an item as unpacked
// @Tags         items
// @Produce      json
// @Security     CookieAuth
// @Param        id      path  string  true  "List ID"
// @Param        itemId  path  string  true  "Item ID"
// @Success      200  {object}  dto.ListResponse
// @Failure      404  {object}  map[string]string
// @Router       /lists/{id}/items/{itemId}/unpack [post]
func (h *ListHandler) UnpackItem(c *gin.Context) {
	listID, itemID, ok := parseListItemIDs(c)
	if !ok {
		return
	}
	l, err := h.svc.UnpackItem(c.Request.Context(), auth.UserIDFromContext(c), listID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listToResponse(l))
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, dom.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseListItemIDs(c *gin.Context) (listID, itemID uuid.UUID, ok bool) {
	listID, ok = parseUUID(c, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	itemID, ok = parseUUID(c, "itemId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return listID, itemID, true
}

func listToResponse(l *dom.PackingList) dto.ListResponse {
	items := make([]dto.ItemResponse, 0, len(l.Items()))
	for _, it := range l.Items() {
		items = append(items, itemToResponse(it))
	}
	return dto.ListResponse{
		ID:      l.ID().String(),
		Name:    l.Name(),
		OwnerID: l.OwnerID().String(),
		Items:   items,
	}
}

func itemToResponse(it dom.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:       it.ID().String(),
		Name:     it.Name(),
		IsPacked: it.IsPacked(),
	}
}
