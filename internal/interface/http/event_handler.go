package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/janata-app/janata-api/internal/application"
	"github.com/janata-app/janata-api/internal/interface/middleware"
	"github.com/janata-app/janata-api/pkg/geo"
	"github.com/janata-app/janata-api/pkg/response"
	"github.com/janata-app/janata-api/pkg/validation"
)

const maxBannerSize = 8 << 20

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type createEventRequest struct {
	Center      string    `json:"center" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Latitude    float64   `json:"latitude" binding:"latitude"`
	Longitude   float64   `json:"longitude" binding:"longitude"`
	Description string    `json:"description"`
	LegacyID    bool      `json:"legacyId"`
}

type updateEventRequest struct {
	Description string `json:"description" binding:"required"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.Create(c.Request.Context(), application.CreateEventInput{
		CenterID:    req.Center,
		Date:        req.Date,
		Location:    geo.Point{Latitude: req.Latitude, Longitude: req.Longitude},
		Description: req.Description,
		LegacyID:    req.LegacyID,
	})
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, e, "event created", nil)
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Svc.List(c.Request.Context(), c.Query("center"))
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, events, "events", map[string]any{"count": len(events)})
}

func (h *EventHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q query parameter is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, e, "event", nil)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.SetDescription(c.Request.Context(), c.Param("id"), req.Description)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, e, "event updated", nil)
}

func (h *EventHandler) Endorse(c *gin.Context) {
	e, err := h.Svc.Endorse(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), c.Param("id"))
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, e, "event endorsed", nil)
}

func (h *EventHandler) Register(c *gin.Context) {
	e, err := h.Svc.Attend(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), c.Param("id"))
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, e, "registered for event", nil)
}

func (h *EventHandler) Unregister(c *gin.Context) {
	e, err := h.Svc.Unregister(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), c.Param("id"))
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, e, "unregistered from event", nil)
}

func (h *EventHandler) UploadBanner(c *gin.Context) {
	file, err := c.FormFile("banner")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "banner file is required", nil)
		return
	}
	if file.Size > maxBannerSize {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "banner exceeds size limit", nil)
		return
	}
	f, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read banner file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	e, err := h.Svc.UploadBanner(c.Request.Context(), c.Param("id"), f,
		file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": e.ID, "bannerUrl": e.BannerURL}, "banner uploaded", nil)
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString(middleware.CtxUsernameKey), c.Param("id")); err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "event deleted", nil)
}
