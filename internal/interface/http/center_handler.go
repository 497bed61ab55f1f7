package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/janata-app/janata-api/internal/application"
	"github.com/janata-app/janata-api/internal/interface/middleware"
	"github.com/janata-app/janata-api/pkg/geo"
	"github.com/janata-app/janata-api/pkg/response"
	"github.com/janata-app/janata-api/pkg/validation"
)

type CenterHandler struct {
	Svc    *application.CenterService
	Logger *logrus.Logger
}

func NewCenterHandler(svc *application.CenterService, logger *logrus.Logger) *CenterHandler {
	return &CenterHandler{Svc: svc, Logger: logger}
}

type createCenterRequest struct {
	Name      string  `json:"name" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"latitude"`
	Longitude float64 `json:"longitude" binding:"longitude"`
	LegacyID  bool    `json:"legacyId"`
}

type updateCenterRequest struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
}

func (h *CenterHandler) Create(c *gin.Context) {
	var req createCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	center, err := h.Svc.Create(c.Request.Context(), req.Name,
		geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}, req.LegacyID)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, center, "center created", nil)
}

func (h *CenterHandler) List(c *gin.Context) {
	centers, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, centers, "centers", map[string]any{"count": len(centers)})
}

func (h *CenterHandler) Nearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		response.Error[any](c, http.StatusBadRequest, "lat and lng query parameters are required", nil)
		return
	}
	radius := 50.0
	if r := c.Query("radius_km"); r != "" {
		if parsed, err := strconv.ParseFloat(r, 64); err == nil && parsed > 0 {
			radius = parsed
		}
	}
	nearby, err := h.Svc.Nearby(c.Request.Context(), geo.Point{Latitude: lat, Longitude: lng}, radius)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, nearby, "nearby centers", map[string]any{"radius_km": radius})
}

func (h *CenterHandler) Get(c *gin.Context) {
	center, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, center, "center", nil)
}

func (h *CenterHandler) Update(c *gin.Context) {
	var req updateCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.UpdateCenterInput{Name: req.Name}
	if req.Latitude != nil && req.Longitude != nil {
		in.Location = &geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}
	center, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, center, "center updated", nil)
}

func (h *CenterHandler) Verify(c *gin.Context) {
	center, err := h.Svc.Verify(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), c.Param("id"))
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, center, "center verified", nil)
}

func (h *CenterHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), c.Param("id")); err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "center deleted", nil)
}
