package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/janata-app/janata-api/internal/application"
	"github.com/janata-app/janata-api/internal/domain/entity"
	"github.com/janata-app/janata-api/internal/interface/middleware"
	"github.com/janata-app/janata-api/pkg/helpers"
	"github.com/janata-app/janata-api/pkg/response"
	"github.com/janata-app/janata-api/pkg/validation"
)

type UserHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,pwd"`
	Center   string `json:"center"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Email  string `json:"email" binding:"omitempty,email"`
	Center string `json:"center"`
}

type verifyUserRequest struct {
	Level int `json:"level" binding:"required"`
}

type awardPointsRequest struct {
	Amount int `json:"amount"`
}

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"username":          u.Username,
		"email":             u.Email,
		"centerAffiliation": u.CenterAffiliation,
		"points":            u.Points,
		"verificationLevel": u.VerificationLevel,
		"role":              u.Role,
		"isVerified":        u.IsVerified,
		"isActive":          u.IsActive,
		"events":            u.Events,
		"createdAt":         u.CreatedAt,
		"updatedAt":         u.UpdatedAt,
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Center)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, userJSON(u), "registered", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"username": u.Username, "role": u.Role}, "login successful",
		map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

func (h *UserHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed",
		map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString(middleware.CtxUsernameKey))
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString(middleware.CtxUsernameKey))
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUsernameKey),
		application.UpdateProfileInput{Email: req.Email, CenterAffiliation: req.Center})
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "profile updated", nil)
}

// Verify raises a member's verification level. Admin capability enforced by
// route middleware and re-checked in the domain.
func (h *UserHandler) Verify(c *gin.Context) {
	var req verifyUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Verify(c.Request.Context(), c.GetString(middleware.CtxUsernameKey),
		c.Param("username"), entity.VerificationLevel(req.Level))
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, userJSON(u), "user verified", nil)
}

func (h *UserHandler) AwardPoints(c *gin.Context) {
	var req awardPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	total, err := h.Svc.AwardPoints(c.Request.Context(), c.GetString(middleware.CtxUsernameKey),
		c.Param("username"), req.Amount)
	if err != nil {
		writeDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"username": c.Param("username"), "points": total}, "points awarded", nil)
}
