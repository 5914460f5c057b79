package store

import "errors"

// Erros comuns relacionados à identificação da loja
var (
	// ErrStoreNotSpecified ocorre quando o cabeçalho store-id não é enviado
	ErrStoreNotSpecified = errors.New("loja não especificada")

	// ErrStoreNotFound ocorre quando a loja não é encontrada
	ErrStoreNotFound = errors.New("loja não encontrada")

	// ErrStoreNotActive ocorre quando a loja não está ativa
	ErrStoreNotActive = errors.New("loja não está ativa")
)
