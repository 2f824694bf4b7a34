package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/tasktrack-dev/tasktrack/internal/authz"
	"github.com/tasktrack-dev/tasktrack/internal/middleware"
	"github.com/tasktrack-dev/tasktrack/internal/models"
	"github.com/tasktrack-dev/tasktrack/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("user not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("invalid user type in context")
	}

	return authenticatedUser, nil
}

// GetActor resolves the policy actor for the current request.
func GetActor(ctx *gin.Context) (authz.Actor, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return authz.Actor{}, err
	}

	return authz.Actor{ID: user.ID, Role: models.Role(user.Role)}, nil
}
