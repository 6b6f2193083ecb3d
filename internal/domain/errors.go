package domain

import (
	"errors"
	"fmt"
)

// ErrorKind clasifica los errores de negocio que el API traduce a códigos HTTP
type ErrorKind string

const (
	ErrNotAuthenticated       ErrorKind = "NotAuthenticated"
	ErrNotAuthorized          ErrorKind = "NotAuthorized"
	ErrNotFound               ErrorKind = "NotFound"
	ErrInvalidInput           ErrorKind = "InvalidInput"
	ErrInvalidStateTransition ErrorKind = "InvalidStateTransition"
	ErrConflictAlreadyExists  ErrorKind = "ConflictAlreadyExists"
	ErrUnexpected             ErrorKind = "Unexpected"
)

// Error representa un error de negocio con su clasificación y un mensaje
// legible para el usuario final
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError crea un error de negocio con el kind y mensaje indicados
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError envuelve un error interno preservando el kind y añadiendo un mensaje
func WrapError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extrae el kind de un error; cualquier error no clasificado es Unexpected
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrUnexpected
}

// MessageOf devuelve el mensaje visible al usuario de un error. Los errores no
// clasificados nunca exponen el texto interno del almacenamiento
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "ha ocurrido un error inesperado, intente nuevamente"
}
