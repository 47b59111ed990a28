package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/docsystem/internal/app/models"
	"github.com/yigit/docsystem/internal/app/models/dto"
)

const (
	// UserIDHeader carries the id of the user the request acts for. It is
	// set by the session layer in front of this service.
	UserIDHeader = "X-User-ID"

	actorKey = "actor"
)

// Actor stores the request's models.Actor in the gin context. A missing
// header yields an anonymous actor; a malformed one is rejected.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := models.Actor{}

		if raw := strings.TrimSpace(c.GetHeader(UserIDHeader)); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid user id header")
				errorDetail = errorDetail.WithDetails(UserIDHeader + " must be a positive integer")
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorAPIResponse(errorDetail))
				return
			}
			actor.UserID = id
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// GetActor returns the actor stored by Actor, anonymous when absent
func GetActor(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{}
}
