// Package payload encodes the two request bodies sent to the customer service.
package payload

import (
	jsoniter "github.com/json-iterator/go"

	"customer-generator/internal/common/errors"
	"customer-generator/internal/generator"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Customer is the body of the creation call. The peselNumber key is part of the service contract.
type Customer struct {
	PeselNumber string `json:"peselNumber"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
}

// CustomerFrom converts a generated customer into its wire shape.
func CustomerFrom(c generator.Customer) Customer {
	return Customer{
		PeselNumber: c.IdentityNumber,
		Name:        c.Name,
		Surname:     c.Surname,
	}
}

// EncodeCustomer serializes the creation payload.
func EncodeCustomer(c Customer) ([]byte, error) {
	body, err := json.Marshal(c)
	if err != nil {
		return nil, errors.NewPayloadEncodingFailedError("customer", err)
	}
	return body, nil
}

// EncodeContactMethods serializes a kind to value mapping as a flat JSON object.
func EncodeContactMethods(methods map[string]string) ([]byte, error) {
	body, err := json.Marshal(methods)
	if err != nil {
		return nil, errors.NewPayloadEncodingFailedError("contact methods", err)
	}
	return body, nil
}
