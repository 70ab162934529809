package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campusbook/internal/domain"
	"campusbook/internal/pkg/response"
	"campusbook/internal/pkg/validator"
)

var kindPaths = map[string]domain.ResourceKind{
	"equipment": domain.KindEquipment,
	"labs":      domain.KindLab,
	"rooms":     domain.KindRoom,
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public catalog endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	for path, kind := range kindPaths {
		k := kind
		rg.GET("/"+path, func(c *gin.Context) { h.listResources(c, k) })
		rg.GET("/"+path+"/:id", func(c *gin.Context) { h.getResource(c, k) })
	}
	rg.GET("/labs/:id/slots", h.listSlots)
}

// RegisterAdminRoutes mounts resource management; rg must carry the admin
// role middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	for path, kind := range kindPaths {
		k := kind
		rg.POST("/"+path, func(c *gin.Context) { h.createResource(c, k) })
		rg.PATCH("/"+path+"/:id", func(c *gin.Context) { h.updateResource(c, k) })
	}
}

func (h *Handler) listResources(c *gin.Context, kind domain.ResourceKind) {
	resources, err := h.service.ListResources(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list resources")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resources": resources})
}

func (h *Handler) getResource(c *gin.Context, kind domain.ResourceKind) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	res, err := h.service.GetResource(c.Request.Context(), kind, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load resource")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resource": res})
}

func (h *Handler) listSlots(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	slots, err := h.service.ListSlots(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Lab not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list time slots")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) createResource(c *gin.Context, kind domain.ResourceKind) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.FieldErrors(c, fields)
		return
	}

	res, err := h.service.CreateResource(c.Request.Context(), kind, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create resource")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"resource": res})
}

func (h *Handler) updateResource(c *gin.Context, kind domain.ResourceKind) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return
	}

	var req UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.UpdateResource(c.Request.Context(), kind, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid resource fields")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update resource")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resource": res})
}
