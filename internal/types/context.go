package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxShopID    ContextKey = "ctx_shop_id"
	CtxUserID    ContextKey = "ctx_user_id"

	// Default values
	DefaultShopID = "00000000-0000-0000-0000-000000000000"
	DefaultUserID = "00000000-0000-0000-0000-000000000000"
)

const (
	HeaderRequestID = "X-Request-ID"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetShopID(ctx context.Context) string {
	if shopID, ok := ctx.Value(CtxShopID).(string); ok {
		return shopID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// SetShopID sets the shop ID in the context
func SetShopID(ctx context.Context, shopID string) context.Context {
	return context.WithValue(ctx, CtxShopID, shopID)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}
