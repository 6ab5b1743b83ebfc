// Package domain models the hosted-checkout flow: session creation, the
// processor's session shapes, and the derivation of a billing record from a
// completed session.
package domain

// Mode selects the processor's checkout mode.
type Mode string

const (
	ModeSubscription Mode = "subscription"
	ModePayment      Mode = "payment"
)

// NormalizeMode preserves the storefront default: anything but an explicit
// one-time payment is a subscription.
func NormalizeMode(raw string) Mode {
	if raw == string(ModePayment) {
		return ModePayment
	}
	return ModeSubscription
}

type InitiateRequest struct {
	PriceID string `json:"priceId"`
	Mode    string `json:"mode"`
}

type InitiateResponse struct {
	ClientSecret string `json:"client_secret"`
}

type ResolveResponse struct {
	Message         string `json:"message,omitempty"`
	BillingRecordID int    `json:"subscriptionId"`
}

// CreateSessionParams is what the processor needs to mint a hosted session.
type CreateSessionParams struct {
	CustomerID string
	PriceID    string
	Mode       Mode
	ReturnURL  string
}

// CreatedSession is the processor's response to session creation.
type CreatedSession struct {
	ID           string
	ClientSecret string
}

// Session is the processor's view of a checkout attempt, read-through only.
type Session struct {
	ID            string
	Mode          Mode
	PaymentStatus string
	AmountTotal   *int64
	Created       int64

	// Subscription is populated only when the session was retrieved with
	// the subscription expanded and the processor attached one.
	Subscription *SubscriptionInfo
}

// SubscriptionInfo is the slice of the processor's subscription object the
// derivation needs.
type SubscriptionInfo struct {
	PriceID            string
	ProductID          string
	CurrentPeriodStart int64
	CurrentPeriodEnd   int64
}

// LineItem is one purchased line of a one-time session.
type LineItem struct {
	PriceID   string
	ProductID string
}

// Product describes the sellable the price belongs to.
type Product struct {
	ID   string
	Name string
}

const PaymentStatusPaid = "paid"

// Kind tags the two materially different session shapes the processor
// returns, resolved once at the boundary so the derivation never branches on
// optional-field presence.
type Kind string

const (
	KindSubscription Kind = "subscription"
	KindOneTime      Kind = "one_time"
)

// CompletedCheckout is the unified view of a paid session.
type CompletedCheckout struct {
	Kind        Kind
	SessionID   string
	ProductID   string
	AmountTotal int64

	// Subscription kind: processor-reported current billing period.
	PeriodStart int64
	PeriodEnd   int64

	// One-time kind: session creation time.
	Created int64
}
