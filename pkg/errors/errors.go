package errors

import "errors"

// ErrConfiguration falta un parámetro obligatorio al arrancar
var ErrConfiguration = errors.New("configuración inválida")

// ErrNotFound la semana no está en la tabla actual (vista desactualizada)
var ErrNotFound = errors.New("semana no encontrada")

// ErrInvalidField el campo no es familia ni turno
var ErrInvalidField = errors.New("campo inválido")

// ErrStoreUnavailable falló la escritura o lectura en la base de datos
var ErrStoreUnavailable = errors.New("almacenamiento no disponible")
