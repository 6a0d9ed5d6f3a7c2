package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/rb-marketplace/internal/application"
	repo "github.com/oksasatya/rb-marketplace/internal/domain/repository"
	"github.com/oksasatya/rb-marketplace/pkg/helpers"
	"github.com/oksasatya/rb-marketplace/pkg/response"
)

var notFoundErrors = []error{
	app.ErrArtworkNotFound,
	app.ErrUserNotFound,
	app.ErrBuyerNotFound,
	app.ErrArtistNotFound,
	repo.ErrNotFound,
}

var businessErrors = []error{
	app.ErrArtworkUnavailable,
	app.ErrSelfPurchase,
	app.ErrInsufficientBalance,
	app.ErrSelfFollow,
	repo.ErrNegativeBalance,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// writeError maps service errors onto HTTP statuses. Unexpected errors are
// logged and reported as "failed to <action>".
func writeError(c *gin.Context, logger *logrus.Logger, err error, action string) {
	switch {
	case isAny(err, notFoundErrors):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case isAny(err, businessErrors):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, app.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, app.ErrLoginUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"action":     action,
		})
		response.Error[any](c, http.StatusInternalServerError, "failed to "+action, nil)
	}
}
