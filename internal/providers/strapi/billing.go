package strapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	billingdomain "github.com/cremaciondirecta/checkout/internal/billing/domain"
)

type subscriptionEnvelope struct {
	Data struct {
		ID         int                         `json:"id"`
		Attributes billingdomain.BillingRecord `json:"attributes"`
	} `json:"data"`
}

type subscriptionListEnvelope struct {
	Data []struct {
		ID         int                         `json:"id"`
		Attributes billingdomain.BillingRecord `json:"attributes"`
	} `json:"data"`
}

func (c *Client) CreateSubscription(ctx context.Context, record billingdomain.BillingRecord) (int, error) {
	body := map[string]any{"data": record}
	var envelope subscriptionEnvelope
	if err := c.do(ctx, http.MethodPost, "subscriptions", "", body, &envelope); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("session %s: %w", record.SessionID, billingdomain.ErrDuplicateSession)
		}
		return 0, err
	}
	if envelope.Data.ID == 0 {
		return 0, fmt.Errorf("backend returned no subscription id for session %s", record.SessionID)
	}
	return envelope.Data.ID, nil
}

func (c *Client) SubscriptionBySessionID(ctx context.Context, sessionID string) (*billingdomain.PersistedRecord, error) {
	var envelope subscriptionListEnvelope
	path := "subscriptions?filters[session_id][$eq]=" + url.QueryEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Data) == 0 {
		return nil, nil
	}
	entry := envelope.Data[0]
	return &billingdomain.PersistedRecord{ID: entry.ID, Record: entry.Attributes}, nil
}

// isUniqueViolation matches the backend's rejection of a duplicate
// session_id under its uniqueness constraint.
func isUniqueViolation(err error) bool {
	apiErr, ok := err.(*apiError)
	if !ok || apiErr.Status != http.StatusBadRequest {
		return false
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "unique")
}
