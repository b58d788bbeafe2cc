package workflow

import (
	"context"
	"time"

	"github.com/samber/lo"

	"customer-generator/internal/common/errors"
	"customer-generator/internal/common/logger"
	"customer-generator/internal/common/observability"
	"customer-generator/internal/customers"
	"customer-generator/internal/generator"
)

// CustomerAPI is the remote service as seen by the workflow.
type CustomerAPI interface {
	CreateCustomer(ctx context.Context, body []byte) (*customers.CreateResult, error)
	AddContactMethods(ctx context.Context, location string, body []byte) (int, error)
}

// State is a customer's position in the submission sequence.
type State string

const (
	StateStart             State = "start"
	StateCustomerCreated   State = "customer_created"
	StateContactsSubmitted State = "contacts_submitted"
	StateDone              State = "done"
)

// CustomerResult records what happened to one customer.
type CustomerResult struct {
	Index         int
	State         State
	Location      string
	CreateStatus  int
	MethodsStatus int
	Kinds         []generator.Kind
	Stage         errors.Stage
	Err           error
	Duration      time.Duration
}

func (r CustomerResult) Failed() bool {
	return r.Err != nil
}

// Report summarizes a run.
type Report struct {
	RunID     string
	Requested int
	Results   []CustomerResult
	StartedAt time.Time
	Duration  time.Duration
}

// Created counts customers that reached the service and got a location.
func (r *Report) Created() int {
	return lo.CountBy(r.Results, func(res CustomerResult) bool { return res.Location != "" })
}

// Completed counts customers that went all the way to Done.
func (r *Report) Completed() int {
	return lo.CountBy(r.Results, func(res CustomerResult) bool { return res.State == StateDone })
}

// Failures returns the customers that could not be fully submitted.
func (r *Report) Failures() []CustomerResult {
	return lo.Filter(r.Results, func(res CustomerResult, _ int) bool { return res.Failed() })
}

// Locations returns the location of every created customer in submission order.
func (r *Report) Locations() []string {
	return lo.FilterMap(r.Results, func(res CustomerResult, _ int) (string, bool) {
		return res.Location, res.Location != ""
	})
}

type ServiceDependencies struct {
	Logger        logger.Logger
	Generator     *generator.Generator
	API           CustomerAPI
	Observability *observability.Observability
}
