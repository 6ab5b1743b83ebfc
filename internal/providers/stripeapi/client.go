// Package stripeapi adapts the Stripe SDK to the checkout domain's
// Processor interface.
package stripeapi

import (
	"context"
	"errors"
	"fmt"

	checkoutdomain "github.com/cremaciondirecta/checkout/internal/checkout/domain"
	"github.com/cremaciondirecta/checkout/internal/config"
	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"go.uber.org/zap"
)

type Client struct {
	sc  *client.API
	log *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Client {
	sc := &client.API{}
	sc.Init(cfg.StripeSecretKey, nil)
	return &Client{
		sc:  sc,
		log: log.Named("providers.stripe"),
	}
}

func (c *Client) CreateSession(ctx context.Context, p checkoutdomain.CreateSessionParams) (checkoutdomain.CreatedSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:     stripe.String(string(p.Mode)),
		Customer: stripe.String(p.CustomerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(p.PriceID),
			Quantity: stripe.Int64(1),
		}},
		UIMode:    stripe.String(string(stripe.CheckoutSessionUIModeEmbedded)),
		ReturnURL: stripe.String(p.ReturnURL),
	}
	params.Context = ctx

	sess, err := c.sc.CheckoutSessions.New(params)
	if err != nil {
		return checkoutdomain.CreatedSession{}, c.classify("create session", err)
	}
	return checkoutdomain.CreatedSession{
		ID:           sess.ID,
		ClientSecret: sess.ClientSecret,
	}, nil
}

func (c *Client) Session(ctx context.Context, id string) (checkoutdomain.Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("subscription")
	params.AddExpand("customer")

	sess, err := c.sc.CheckoutSessions.Get(id, params)
	if err != nil {
		return checkoutdomain.Session{}, c.classify("get session", err)
	}

	session := checkoutdomain.Session{
		ID:            sess.ID,
		Mode:          checkoutdomain.NormalizeMode(string(sess.Mode)),
		PaymentStatus: string(sess.PaymentStatus),
		Created:       sess.Created,
	}
	// The SDK reports an absent amount_total as zero; no paid session has
	// a zero total, so zero stands in for absent.
	if sess.AmountTotal > 0 {
		amount := sess.AmountTotal
		session.AmountTotal = &amount
	}
	if sub := sess.Subscription; sub != nil && sub.Items != nil && len(sub.Items.Data) > 0 {
		price := sub.Items.Data[0].Price
		info := &checkoutdomain.SubscriptionInfo{
			CurrentPeriodStart: sub.CurrentPeriodStart,
			CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		}
		if price != nil {
			info.PriceID = price.ID
			if price.Product != nil {
				info.ProductID = price.Product.ID
			}
		}
		session.Subscription = info
	}
	return session, nil
}

func (c *Client) LineItems(ctx context.Context, sessionID string) ([]checkoutdomain.LineItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx

	iter := c.sc.CheckoutSessions.ListLineItems(params)
	items := []checkoutdomain.LineItem{}
	for iter.Next() {
		li := iter.LineItem()
		item := checkoutdomain.LineItem{}
		if li.Price != nil {
			item.PriceID = li.Price.ID
			if li.Price.Product != nil {
				item.ProductID = li.Price.Product.ID
			}
		}
		items = append(items, item)
	}
	if err := iter.Err(); err != nil {
		return nil, c.classify("list line items", err)
	}
	return items, nil
}

func (c *Client) Product(ctx context.Context, id string) (checkoutdomain.Product, error) {
	params := &stripe.ProductParams{}
	params.Context = ctx

	product, err := c.sc.Products.Get(id, params)
	if err != nil {
		return checkoutdomain.Product{}, c.classify("get product", err)
	}
	return checkoutdomain.Product{ID: product.ID, Name: product.Name}, nil
}

// classify splits processor failures into retryable connectivity errors and
// request-level rejections.
func (c *Client) classify(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		c.log.Error("stripe request rejected",
			zap.String("op", op),
			zap.Int("status", stripeErr.HTTPStatusCode),
			zap.String("code", string(stripeErr.Code)),
		)
		if stripeErr.HTTPStatusCode >= 500 {
			return fmt.Errorf("%w: %s", checkoutdomain.ErrProcessorUnavailable, op)
		}
		return fmt.Errorf("%w: %s: %s", checkoutdomain.ErrProcessor, op, stripeErr.Msg)
	}
	c.log.Error("stripe request failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s", checkoutdomain.ErrProcessorUnavailable, op)
}
