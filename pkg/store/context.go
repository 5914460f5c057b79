package store

import (
	"context"
)

type contextKey string

const (
	// storeIDKey é a chave usada para armazenar o ID da loja no contexto
	storeIDKey contextKey = "store_id"

	// HeaderName é o cabeçalho HTTP que identifica a loja
	HeaderName = "store-id"
)

// SetStoreIDContext define o ID da loja no contexto
func SetStoreIDContext(ctx context.Context, storeID string) context.Context {
	return context.WithValue(ctx, storeIDKey, storeID)
}

// GetStoreIDFromContext obtém o ID da loja do contexto
func GetStoreIDFromContext(ctx context.Context) string {
	if storeID, ok := ctx.Value(storeIDKey).(string); ok {
		return storeID
	}
	return ""
}

// GetStoreID obtém o ID da loja de um contexto do Gin ou de um context.Context
func GetStoreID(c interface{}) string {
	if gc, ok := c.(interface{ GetString(string) string }); ok {
		if id := gc.GetString(string(storeIDKey)); id != "" {
			return id
		}
	}

	if ctx, ok := c.(context.Context); ok {
		return GetStoreIDFromContext(ctx)
	}

	return ""
}
