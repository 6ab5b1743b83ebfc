// Package domain contains the durable billing record written after a
// completed checkout.
package domain

// BillingRecord is the system's business record of a sale, persisted once per
// checkout session in the backend's subscription collection. Amounts are
// decimal currency units rounded to two places; dates are UTC YYYY-MM-DD.
type BillingRecord struct {
	PlanName         string  `json:"plan_name"`
	AmountOfCycles   int     `json:"amount_of_cycles"`
	AmountPaidCycles int     `json:"amount_paid_cycles"`
	AmountPaid       float64 `json:"amount_paid"`
	MonthlyPayment   float64 `json:"monthly_payment"`
	TotalAmountToPay float64 `json:"total_amount_to_pay"`
	AmountDue        float64 `json:"amount_due"`
	StartingDate     string  `json:"starting_date"`
	NextPaymentDate  string  `json:"next_payment_date"`
	SessionID        string  `json:"session_id"`

	// Backend foreign keys: the user and the backend's customer link
	// record (not the processor's external id).
	UserID     int `json:"users_permissions_user"`
	CustomerID int `json:"stripe_customer"`
}

// PersistedRecord is a billing record as stored by the backend.
type PersistedRecord struct {
	ID     int
	Record BillingRecord
}
