package models

import "time"

// Location is a city the company operates in. Reference data owned by the
// catalog; the checkout flow only reads it.
type Location struct {
	ID        int       `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Slug      string    `json:"slug" bson:"slug"`
	IsActive  bool      `json:"isActive" bson:"isActive"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt"`
}

// ServiceOffering is a pricing-catalog entry scoped to a single location.
// Price is a decimal string ("4999.00"); conversion to minor units happens
// only at the payment boundary.
type ServiceOffering struct {
	ID                 int       `json:"id" bson:"id"`
	LocationID         int       `json:"locationId" bson:"locationId"`
	ServiceName        string    `json:"serviceName" bson:"serviceName"`
	ServiceDescription string    `json:"serviceDescription" bson:"serviceDescription"`
	Price              string    `json:"price" bson:"price"`
	Currency           string    `json:"currency" bson:"currency"`
	Duration           string    `json:"duration" bson:"duration"`
	Features           []string  `json:"features" bson:"features"`
	IsActive           bool      `json:"isActive" bson:"isActive"`
	CreatedAt          time.Time `json:"createdAt,omitempty" bson:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt,omitempty" bson:"updatedAt"`
}
