// Package domain contains the backend user graph consumed by checkout.
package domain

// Customer is the content backend's link record to the payment processor's
// customer object. ID is the backend's own identifier for the link record;
// StripeCustomerID is the processor's opaque handle.
type Customer struct {
	ID               int    `json:"id"`
	StripeCustomerID string `json:"stripe_customer_id"`
}

// User is an authenticated storefront account.
type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	StripeCustomer *Customer `json:"stripe_customer,omitempty"`
}

// Auth is the backend's credential response: a bearer token plus the user it
// belongs to.
type Auth struct {
	JWT  string `json:"jwt"`
	User User   `json:"user"`
}
