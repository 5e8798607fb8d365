package domain

import "time"

// MaxAddressesPerUser caps the address book size.
const MaxAddressesPerUser = 2

type Address struct {
	AddressID  string    `json:"id" dynamodbav:"address_id"`
	UserID     string    `json:"user_id" dynamodbav:"user_id"`
	Label      string    `json:"label,omitempty" dynamodbav:"label"`
	Line1      string    `json:"line1" dynamodbav:"line1"`
	Line2      string    `json:"line2,omitempty" dynamodbav:"line2"`
	City       string    `json:"city" dynamodbav:"city"`
	State      string    `json:"state" dynamodbav:"state"`
	PostalCode string    `json:"postal_code" dynamodbav:"postal_code"`
	Country    string    `json:"country" dynamodbav:"country"`
	Phone      string    `json:"phone,omitempty" dynamodbav:"phone"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateAddressRequest struct {
	Label      string `json:"label"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Phone      string `json:"phone"`
}

type UpdateAddressRequest struct {
	Label      *string `json:"label"`
	Line1      *string `json:"line1"`
	Line2      *string `json:"line2"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
	Phone      *string `json:"phone"`
}
