package validation

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// CustomerSchema describes the body of POST /customers.
const CustomerSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["peselNumber", "name", "surname"],
  "additionalProperties": false,
  "properties": {
    "peselNumber": {"type": "string", "pattern": "^[0-9]{11}$"},
    "name":        {"type": "string", "minLength": 1},
    "surname":     {"type": "string", "minLength": 1}
  }
}`

// ContactMethodsSchema describes the body of POST <location>/methods.
const ContactMethodsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "minProperties": 2,
  "maxProperties": 4,
  "additionalProperties": false,
  "properties": {
    "emailAddress":        {"type": "string", "minLength": 1},
    "residenceAddress":    {"type": "string", "minLength": 1},
    "registeredAddress":   {"type": "string", "minLength": 1},
    "privatePhoneNumber":  {"type": "string", "pattern": "^[0-9]+$"},
    "businessPhoneNumber": {"type": "string", "pattern": "^[0-9]+$"}
  }
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// GetErrorMessages flattens the result into "field: message" strings.
func (r *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return messages
}

// Validator checks encoded payloads against a compiled JSON schema.
type Validator struct {
	name   string
	schema *gojsonschema.Schema
}

// NewValidator compiles schemaJSON once.
func NewValidator(name, schemaJSON string) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return &Validator{name: name, schema: schema}, nil
}

func (v *Validator) Name() string { return v.name }

// ValidateJSON validates an encoded JSON document.
func (v *Validator) ValidateJSON(document []byte) (*ValidationResult, error) {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validate %s payload: %w", v.name, err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, re := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   re.Field(),
			Message: re.Description(),
			Code:    re.Type(),
		})
	}
	return out, nil
}

var (
	builtinOnce     sync.Once
	customerV       *Validator
	contactMethodsV *Validator
	builtinErr      error
)

// Builtin returns the validators for the two wire payloads.
func Builtin() (customer, contactMethods *Validator, err error) {
	builtinOnce.Do(func() {
		customerV, builtinErr = NewValidator("customer", CustomerSchema)
		if builtinErr != nil {
			return
		}
		contactMethodsV, builtinErr = NewValidator("contact methods", ContactMethodsSchema)
	})
	return customerV, contactMethodsV, builtinErr
}
