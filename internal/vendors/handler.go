package vendors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tprm-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches vendor routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/vendors", h.create)
	rg.GET("/vendors", h.list)
	rg.GET("/vendors/:id", h.get)
}

type createVendorRequest struct {
	Name            string  `json:"name"`
	Website         string  `json:"website"`
	Description     string  `json:"description"`
	Criticality     string  `json:"criticality"`
	Spend           float64 `json:"spend"`
	DataSensitivity string  `json:"dataSensitivity"`
}

func (h *Handler) create(c *gin.Context) {
	var req createVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	vendor, err := h.Svc.Create(c.Request.Context(), Vendor{
		Name:            req.Name,
		Website:         req.Website,
		Description:     req.Description,
		Criticality:     req.Criticality,
		Spend:           req.Spend,
		DataSensitivity: req.DataSensitivity,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to create vendor", nil)
		}
		return
	}

	c.Set("vendorId", vendor.ID)
	respond.JSON(c, http.StatusCreated, toResponse(vendor))
}

func (h *Handler) get(c *gin.Context) {
	vendorID := c.Param("id")
	c.Set("vendorId", vendorID)

	vendor, err := h.Svc.Get(c.Request.Context(), vendorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "vendor not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to load vendor", nil)
		}
		return
	}

	respond.OK(c, toResponse(vendor))
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list vendors", nil)
		return
	}

	out := make([]VendorResponse, 0, len(list))
	for _, vendor := range list {
		out = append(out, toResponse(vendor))
	}
	respond.OK(c, out)
}
