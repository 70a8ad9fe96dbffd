package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeIdempotency  Code = "IDEMPOTENCY_KEY_REUSED"
	CodeRateLimit    Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"

	// Checkout denial codes. Every one of these is a user-correctable
	// input or state problem detected before any transaction write.
	CodeEmptyCart                 Code = "EMPTY_CART"
	CodeTicketDateInvalid         Code = "TICKET_DATE_INVALID"
	CodeMemberTicketLoginRequired Code = "LOGIN_REQUIRED_FOR_MEMBER_TICKET"
	CodeMemberTicketMembership    Code = "ACTIVE_MEMBERSHIP_REQUIRED_FOR_MEMBER_TICKET"
	CodeMemberTicketQuotaExceeded Code = "MEMBER_TICKET_QUOTA_EXCEEDED"
	CodeMembershipAlreadyActive   Code = "ALREADY_ACTIVE_MEMBERSHIP"
	CodeSalesClosedForToday       Code = "SALES_CLOSED_FOR_TODAY"
	CodeFieldValidation           Code = "FIELD_VALIDATION_ERROR"
)

type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeUnauthorized: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: "authentication required",
	},
	CodeForbidden: {
		HTTPStatus:    http.StatusForbidden,
		PublicMessage: "access denied",
	},
	CodeNotFound: {
		HTTPStatus:    http.StatusNotFound,
		PublicMessage: "resource not found",
	},
	CodeConflict: {
		HTTPStatus:     http.StatusConflict,
		PublicMessage:  "conflict detected",
		DetailsAllowed: true,
	},
	CodeIdempotency: {
		HTTPStatus:     http.StatusConflict,
		PublicMessage:  "idempotency key reused",
		DetailsAllowed: true,
	},
	CodeRateLimit: {
		HTTPStatus:    http.StatusTooManyRequests,
		PublicMessage: "rate limit exceeded",
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		Retryable:     true,
		PublicMessage: "internal server error",
	},
	CodeDependency: {
		HTTPStatus:     http.StatusServiceUnavailable,
		Retryable:      true,
		PublicMessage:  "dependency unavailable",
		DetailsAllowed: true,
	},
	CodeEmptyCart: {
		HTTPStatus:    http.StatusUnprocessableEntity,
		PublicMessage: "cart is empty",
	},
	CodeTicketDateInvalid: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		PublicMessage:  "all tickets in an order must share one visit date",
		DetailsAllowed: true,
	},
	CodeMemberTicketLoginRequired: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: "sign in to purchase member tickets",
	},
	CodeMemberTicketMembership: {
		HTTPStatus:    http.StatusForbidden,
		PublicMessage: "an active membership is required to purchase member tickets",
	},
	CodeMemberTicketQuotaExceeded: {
		HTTPStatus:     http.StatusUnprocessableEntity,
		PublicMessage:  "member ticket quota exceeded",
		DetailsAllowed: true,
	},
	CodeMembershipAlreadyActive: {
		HTTPStatus:    http.StatusConflict,
		PublicMessage: "an active membership already exists",
	},
	CodeSalesClosedForToday: {
		HTTPStatus:    http.StatusUnprocessableEntity,
		PublicMessage: "same-day ticket sales have closed",
	},
	CodeFieldValidation: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "some fields are invalid",
		DetailsAllowed: true,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// ErrorDump flattens an error chain for structured logging.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Chain      []string `json:"chain,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = stdErrors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	return d
}
