package handler

import (
	"net/http"

	"github.com/MalditoKM/Asistent-Restaurant/internal/dto"
	"github.com/MalditoKM/Asistent-Restaurant/internal/middleware"
	"github.com/MalditoKM/Asistent-Restaurant/internal/service"

	"github.com/gin-gonic/gin"
)

type RestaurantsHandler struct{ svc service.DirectoryService }

func NewRestaurantsHandler(svc service.DirectoryService) *RestaurantsHandler {
	return &RestaurantsHandler{svc: svc}
}

// List returns every restaurant with its users. Superadmin only.
func (h *RestaurantsHandler) List(c *gin.Context) {
	resp, err := h.svc.ListAll(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one restaurant with its users. Admins can only fetch their own.
func (h *RestaurantsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update applies restaurant and/or admin-account changes in one transaction.
func (h *RestaurantsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateRestaurantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes a restaurant and cascades to all of its tenant data.
func (h *RestaurantsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
