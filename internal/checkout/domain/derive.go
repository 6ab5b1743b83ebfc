package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	billingdomain "github.com/cremaciondirecta/checkout/internal/billing/domain"
)

var cycleToken = regexp.MustCompile(`\d+`)

// ParseCycleCount extracts the total billing cycles from a product's display
// name ("Plan 24 meses" -> 24). The name is the only place the processor
// carries this today, so an unparseable name is a hard failure: guessing a
// default would misstate money owed.
func ParseCycleCount(productName string) (int, error) {
	token := cycleToken.FindString(productName)
	if token == "" {
		return 0, fmt.Errorf("%w: no cycle count in product name %q", ErrMalformedSession, productName)
	}
	cycles, err := strconv.Atoi(token)
	if err != nil || cycles < 1 {
		return 0, fmt.Errorf("%w: bad cycle count %q in product name %q", ErrMalformedSession, token, productName)
	}
	return cycles, nil
}

// BuildBillingRecord derives the durable record from a unified completed
// checkout. Money comes from the processor's minor-unit total; the cycle
// count from the product name for subscriptions and 1 for one-time payments.
func BuildBillingRecord(cc CompletedCheckout, productName string, userID, customerID int) (billingdomain.BillingRecord, error) {
	monthly := round2(float64(cc.AmountTotal) / 100)

	var (
		cycles      int
		starting    string
		nextPayment string
	)
	switch cc.Kind {
	case KindSubscription:
		parsed, err := ParseCycleCount(productName)
		if err != nil {
			return billingdomain.BillingRecord{}, err
		}
		cycles = parsed
		starting = FormatDate(cc.PeriodStart)
		nextPayment = FormatDate(cc.PeriodEnd)
	case KindOneTime:
		cycles = 1
		starting = FormatDate(cc.Created)
		nextPayment = starting
	default:
		return billingdomain.BillingRecord{}, fmt.Errorf("%w: unknown checkout kind %q", ErrMalformedSession, cc.Kind)
	}

	total := round2(monthly * float64(cycles))
	paid := monthly
	due := round2(total - paid)
	if due < 0 {
		due = 0
	}

	return billingdomain.BillingRecord{
		PlanName:         productName,
		AmountOfCycles:   cycles,
		AmountPaidCycles: 1,
		AmountPaid:       paid,
		MonthlyPayment:   monthly,
		TotalAmountToPay: total,
		AmountDue:        due,
		StartingDate:     starting,
		NextPaymentDate:  nextPayment,
		SessionID:        cc.SessionID,
		UserID:           userID,
		CustomerID:       customerID,
	}, nil
}

// FormatDate truncates processor epoch seconds to a UTC calendar date.
func FormatDate(epochSeconds int64) string {
	return time.Unix(epochSeconds, 0).UTC().Format("2006-01-02")
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
