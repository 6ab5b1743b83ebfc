package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	billingdomain "github.com/cremaciondirecta/checkout/internal/billing/domain"
	catalogdomain "github.com/cremaciondirecta/checkout/internal/catalog/domain"
	checkoutdomain "github.com/cremaciondirecta/checkout/internal/checkout/domain"
	contactdomain "github.com/cremaciondirecta/checkout/internal/contact/domain"
	identitydomain "github.com/cremaciondirecta/checkout/internal/identity/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type      string            `json:"type"`
	Message   string            `json:"message"`
	Redirect  string            `json:"redirect,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	Errors    []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		if status == http.StatusUnauthorized && payload.Type != "invalid_credentials" {
			payload.Redirect = signInRedirect(c)
		}
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

// signInRedirect builds the sign-in location preserving the page the
// visitor tried to reach.
func signInRedirect(c *gin.Context) string {
	target := c.Request.URL.Path
	if raw := c.Request.URL.RawQuery; raw != "" {
		target += "?" + raw
	}
	return "/sign-in?redirect=" + url.QueryEscape(target)
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	var persistErr *billingdomain.PersistenceError
	if errors.As(err, &persistErr) {
		return http.StatusBadGateway, errorPayload{
			Type:      "persistence_error",
			Message:   "billing record could not be saved",
			SessionID: persistErr.SessionID,
		}
	}

	switch {
	case errors.Is(err, identitydomain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorPayload{
			Type:    "auth_required",
			Message: "authentication required",
		}
	case errors.Is(err, identitydomain.ErrCustomerNotLinked):
		return http.StatusUnauthorized, errorPayload{
			Type:    "customer_not_linked",
			Message: "account has no payment profile",
		}
	case errors.Is(err, identitydomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "invalid_credentials",
			Message: "invalid credentials",
		}
	case errors.Is(err, identitydomain.ErrUserExists):
		return http.StatusBadRequest, errorPayload{
			Type:    "user_exists",
			Message: "email or username already taken",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{Field: "request", Code: "invalid_request", Message: "invalid request"},
			},
		}
	case errors.Is(err, checkoutdomain.ErrPaymentIncomplete):
		return http.StatusBadRequest, errorPayload{
			Type:    "payment_incomplete",
			Message: "payment has not completed",
		}
	case errors.Is(err, checkoutdomain.ErrMalformedSession):
		return http.StatusBadRequest, errorPayload{
			Type:    "malformed_session",
			Message: "session data cannot be interpreted",
		}
	case errors.Is(err, checkoutdomain.ErrProcessorUnavailable),
		errors.Is(err, identitydomain.ErrBackendUnavailable),
		errors.Is(err, catalogdomain.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	case errors.Is(err, checkoutdomain.ErrProcessor):
		return http.StatusBadGateway, errorPayload{
			Type:    "processor_error",
			Message: "payment processor rejected the request",
		}
	case errors.Is(err, contactdomain.ErrDeliveryFailed):
		return http.StatusBadGateway, errorPayload{
			Type:    "delivery_failed",
			Message: "message could not be delivered",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, checkoutdomain.ErrInvalidRequest),
		errors.Is(err, identitydomain.ErrInvalidRequest),
		errors.Is(err, contactdomain.ErrInvalidRequest),
		errors.Is(err, billingdomain.ErrInvalidRecord),
		errors.Is(err, catalogdomain.ErrInvalidCountry):
		return true
	default:
		return false
	}
}

// classifyErrorForLog labels request errors for the access log so each
// failure class stays distinguishable in aggregates.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	if asValidationErrors(err) != nil {
		return "validation_error", "invalid_request"
	}
	switch {
	case errors.Is(err, identitydomain.ErrUnauthenticated):
		return "auth_required", "unauthenticated"
	case errors.Is(err, identitydomain.ErrCustomerNotLinked):
		return "auth_required", "customer_not_linked"
	case errors.Is(err, identitydomain.ErrInvalidCredentials):
		return "auth_required", "invalid_credentials"
	case errors.Is(err, identitydomain.ErrUserExists):
		return "validation_error", "user_exists"
	case isValidationError(err):
		return "validation_error", "invalid_request"
	case errors.Is(err, checkoutdomain.ErrPaymentIncomplete):
		return "payment", "payment_incomplete"
	case errors.Is(err, checkoutdomain.ErrMalformedSession):
		return "payment", "malformed_session"
	case errors.Is(err, checkoutdomain.ErrProcessorUnavailable):
		return "upstream", "processor_unavailable"
	case errors.Is(err, checkoutdomain.ErrProcessor):
		return "upstream", "processor_error"
	case errors.Is(err, identitydomain.ErrBackendUnavailable),
		errors.Is(err, catalogdomain.ErrCatalogUnavailable):
		return "upstream", "backend_unavailable"
	case errors.Is(err, billingdomain.ErrPersistence):
		return "upstream", "persistence_error"
	case errors.Is(err, contactdomain.ErrDeliveryFailed):
		return "upstream", "delivery_failed"
	default:
		return "internal", "internal_error"
	}
}
