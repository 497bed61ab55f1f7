package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/janata-app/janata-api/internal/application"
	"github.com/janata-app/janata-api/internal/domain/entity"
	"github.com/janata-app/janata-api/internal/domain/repository"
	"github.com/janata-app/janata-api/pkg/response"
)

// writeDomainError maps domain and storage errors onto the HTTP taxonomy:
// missing records 404, uniqueness and association conflicts 409, capability
// failures 403, rejected mutations 400, everything else 500 with a generic
// message.
func writeDomainError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrEventNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, repository.ErrAlreadyExists),
		errors.Is(err, application.ErrUsernameTaken),
		errors.Is(err, entity.ErrAlreadyAttending),
		errors.Is(err, entity.ErrNotAttending):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, entity.ErrNotAuthorized):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, entity.ErrNegativePoints),
		errors.Is(err, entity.ErrInsufficientRank),
		errors.Is(err, entity.ErrLevelDowngrade),
		errors.Is(err, entity.ErrInvalidLevel):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
