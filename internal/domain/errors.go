package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrDuplicateUsername   = errors.New("el nombre de usuario ya existe")
	ErrInvalidCredentials  = errors.New("credenciales inválidas")
	ErrUnauthenticated     = errors.New("sesión requerida")
	ErrValidation          = errors.New("entrada inválida")
	ErrUnsupportedFileType = errors.New("tipo de archivo no permitido")
	ErrExternalService     = errors.New("fallo del servicio externo")
	ErrInsufficientStock   = errors.New("stock insuficiente")
)
