package payload

import (
	stdjson "encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer-generator/internal/generator"
)

func TestEncodeCustomer(t *testing.T) {
	body, err := EncodeCustomer(Customer{PeselNumber: "11111111111", Name: "Mieszko", Surname: "Pierwszy"})
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, stdjson.Unmarshal(body, &got))
	assert.Equal(t, map[string]interface{}{
		"peselNumber": "11111111111",
		"name":        "Mieszko",
		"surname":     "Pierwszy",
	}, got)
}

func TestCustomerFrom(t *testing.T) {
	c := CustomerFrom(generator.Customer{Name: "Ala", Surname: "Kot", IdentityNumber: "99010100001"})
	assert.Equal(t, Customer{PeselNumber: "99010100001", Name: "Ala", Surname: "Kot"}, c)
}

func TestEncodeContactMethods_OnlySelectedKeys(t *testing.T) {
	body, err := EncodeContactMethods(map[string]string{
		"residenceAddress":   "residence",
		"privatePhoneNumber": "111111111",
	})
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, stdjson.Unmarshal(body, &got))
	assert.Equal(t, map[string]string{
		"residenceAddress":   "residence",
		"privatePhoneNumber": "111111111",
	}, got)
}

func TestEncodeContactMethods_Escaping(t *testing.T) {
	body, err := EncodeContactMethods(map[string]string{"residenceAddress": `a "quoted" street`})
	require.NoError(t, err)
	assert.JSONEq(t, `{"residenceAddress":"a \"quoted\" street"}`, string(body))
}

func TestEncodeContactMethods_FromGenerator(t *testing.T) {
	g := generator.New(5)
	methods := g.ContactMethods()

	body, err := EncodeContactMethods(methods.Strings())
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, stdjson.Unmarshal(body, &got))
	assert.Len(t, got, len(methods))
	for kind, value := range methods {
		assert.Equal(t, value, got[string(kind)])
	}
}
