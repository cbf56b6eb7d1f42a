package models

// CustomerDetails is the contact block captured by the checkout form. It is
// validated before an order draft is built and never persisted on its own.
type CustomerDetails struct {
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Company string `json:"company,omitempty" bson:"company,omitempty"`
}
