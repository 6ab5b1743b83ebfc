// Package domain contains the contact-form relay.
package domain

import (
	"context"
	"errors"
)

type ContactRequest struct {
	UserEmail string `json:"userEmail"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

type Service interface {
	Relay(ctx context.Context, req ContactRequest) error
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrDeliveryFailed = errors.New("delivery_failed")
)
