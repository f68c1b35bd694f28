package handlers

import (
	"errors"

	"safeguard/internal/repositories/interfaces"
	"safeguard/internal/services"
	"safeguard/internal/utils"
	"safeguard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondBindError distinguishes per-field schema violations from malformed
// JSON when request binding fails.
func respondBindError(c *gin.Context, err error, fallback string) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.ValidationErrorResponse(c, utils.ValidationErrors(err))
		return
	}
	utils.BadRequestResponse(c, fallback)
}

// respondServiceError maps the service error taxonomy onto HTTP responses.
// Validation, not-found, conflict and dependency failures stay distinguishable
// so a caller can always tell whether its SOS was actually recorded.
func respondServiceError(c *gin.Context, log *logger.Logger, err error, resource string) {
	switch {
	case errors.Is(err, services.ErrInvalidCoordinates),
		errors.Is(err, services.ErrInvalidTargetStatus):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, interfaces.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, interfaces.ErrAlertClosed):
		utils.ConflictResponse(c, "SOS alert is already closed")
	default:
		log.WithError(err).Error("request failed")
		utils.InternalServerErrorResponse(c)
	}
}

// callerID extracts the authenticated user from the request context set by
// the auth middleware.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		utils.BadRequestResponse(c, "Invalid user ID")
		return primitive.NilObjectID, false
	}

	return userObjectID, true
}
