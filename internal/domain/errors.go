package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
)

// Kind clasifica los errores del motor de órdenes.
type Kind string

const (
	KindValidation Kind = "VALIDATION"          // dato faltante, cantidad no positiva, duplicado
	KindInvariant  Kind = "INVARIANT_VIOLATION" // recibido > pedido, línea recibida, orden bloqueada
	KindNotFound   Kind = "NOT_FOUND"
)

// Error es el resultado tipado de una operación rechazada. Siempre recuperable:
// el caller lo traduce a un mensaje para el usuario.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// Is compara por Code para que errors.Is funcione con los sentinelas de abajo
// aunque el mensaje sea distinto.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Códigos del motor de órdenes.
var (
	ErrInvalidQuantity = &Error{Kind: KindValidation, Code: "INVALID_QUANTITY", Message: "cantidad inválida"}
	ErrMissingField    = &Error{Kind: KindValidation, Code: "MISSING_FIELD", Message: "campo requerido"}
	ErrInvalidAmount   = &Error{Kind: KindValidation, Code: "INVALID_AMOUNT", Message: "monto inválido"}
	ErrPartInactive    = &Error{Kind: KindValidation, Code: "PART_INACTIVE", Message: "el repuesto está inactivo"}
	ErrWrongOrderKind  = &Error{Kind: KindValidation, Code: "WRONG_ORDER_KIND", Message: "operación no válida para este tipo de orden"}
	ErrPartNotFound    = &Error{Kind: KindNotFound, Code: "PART_NOT_FOUND", Message: "repuesto no encontrado"}
	ErrLineNotFound    = &Error{Kind: KindNotFound, Code: "LINE_NOT_FOUND", Message: "línea no encontrada"}
	ErrOrderLocked     = &Error{Kind: KindInvariant, Code: "ORDER_LOCKED", Message: "la orden está cerrada"}
	ErrOverReceive     = &Error{Kind: KindInvariant, Code: "OVER_RECEIVE", Message: "lo recibido supera lo pedido"}
	ErrLineReceived    = &Error{Kind: KindInvariant, Code: "LINE_RECEIVED", Message: "la línea ya tiene cantidades recibidas"}
)

// NewError crea un error con el mismo Code que base pero con un mensaje específico.
func NewError(base *Error, message string) *Error {
	return &Error{Kind: base.Kind, Code: base.Code, Message: message}
}

// KindOf devuelve el Kind de err o "" si no es un *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
