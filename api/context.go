package api

import (
	"context"

	"github.com/agrimgupta/portfolio-blog-backend/models"
)

type keyType string

const userKey keyType = "user"

// ctxWithUser adds the authenticated admin user to the context
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// userFromCtx retrieves the authenticated admin user from the context, or
// nil when the request is unauthenticated.
func userFromCtx(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userKey).(*models.User); ok {
		return user
	}
	return nil
}
