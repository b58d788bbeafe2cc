// Package workflow drives the customer submission sequence: build an identity,
// create the customer, then attach a random set of contact methods to it.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	"customer-generator/internal/common/errors"
	"customer-generator/internal/common/logger"
	"customer-generator/internal/common/metrics"
	"customer-generator/internal/common/observability"
	"customer-generator/internal/common/validation"
	"customer-generator/internal/generator"
	"customer-generator/internal/payload"
)

// maxPreallocatedResults bounds the up-front capacity of Report.Results; larger
// runs grow the slice as customers are processed.
const maxPreallocatedResults = 1024

type Service struct {
	config    *Config
	logger    logger.Logger
	generator *generator.Generator
	api       CustomerAPI
	obs       *observability.Observability

	customerSchema *validation.Validator
	methodsSchema  *validation.Validator
}

func NewService(deps ServiceDependencies, config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workflow configuration: %w", err)
	}
	if deps.API == nil {
		return nil, fmt.Errorf("workflow: customer API is required")
	}

	s := &Service{
		config:    config,
		logger:    deps.Logger,
		generator: deps.Generator,
		api:       deps.API,
		obs:       deps.Observability,
	}
	if s.logger == nil {
		s.logger = logger.NewStructured("info", "json")
	}
	if s.generator == nil {
		s.generator = generator.New(0)
	}

	if config.ValidatePayloads {
		customer, methods, err := validation.Builtin()
		if err != nil {
			return nil, err
		}
		s.customerSchema, s.methodsSchema = customer, methods
	}
	return s, nil
}

// Run submits count customers one after another. Under the abort policy the
// first failure ends the run; under continue every failure is collected and
// returned together once all customers were attempted. The report is always
// returned, even on error.
func (s *Service) Run(ctx context.Context, count int) (*Report, error) {
	if count < 0 {
		return nil, errors.NewInvalidCustomerCountError(fmt.Sprint(count), nil)
	}

	report := &Report{
		RunID:     uuid.NewString(),
		Requested: count,
		Results:   make([]CustomerResult, 0, min(count, maxPreallocatedResults)),
		StartedAt: time.Now(),
	}
	log := s.logger.WithFields(map[string]interface{}{"runId": report.RunID})

	log.Info("Starting customer generation", map[string]interface{}{
		"count":         count,
		"failurePolicy": s.config.FailurePolicy,
	})

	var runErr error
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			runErr = multierr.Append(runErr, errors.NewRunCancelledError(err))
			break
		}

		result, err := s.processCustomer(ctx, log, i)
		report.Results = append(report.Results, result)
		if err == nil {
			continue
		}

		runErr = multierr.Append(runErr, err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			runErr = multierr.Append(runErr, errors.NewRunCancelledError(ctxErr))
			break
		}
		if s.config.abortOnFailure() {
			break
		}
	}

	report.Duration = time.Since(report.StartedAt)
	fields := map[string]interface{}{
		"requested": report.Requested,
		"created":   report.Created(),
		"completed": report.Completed(),
		"failed":    len(report.Failures()),
		"duration":  report.Duration.String(),
	}
	if runErr != nil {
		log.WithError(runErr).Error("Customer generation finished with errors", fields)
		return report, runErr
	}
	log.Info("Customer generation finished", fields)
	return report, nil
}

// ProcessCustomer runs the submission sequence for the customer at index.
// Any failure is returned as an *errors.CustomerError naming the stage.
func (s *Service) ProcessCustomer(ctx context.Context, index int) (CustomerResult, error) {
	return s.processCustomer(ctx, s.logger, index)
}

func (s *Service) processCustomer(ctx context.Context, log logger.Logger, index int) (CustomerResult, error) {
	log = log.WithFields(map[string]interface{}{"customerIndex": index})
	start := time.Now()
	result := CustomerResult{Index: index, State: StateStart}

	ctx, span := s.obs.StartSpan(ctx, "customer.submit", attribute.Int("customer.index", index))
	defer span.End()

	fail := func(stage errors.Stage, err error) (CustomerResult, error) {
		cerr := &errors.CustomerError{Index: index, Stage: stage, Location: result.Location, Err: err}
		result.Stage = stage
		result.Err = cerr
		result.Duration = time.Since(start)
		s.recordFailure(ctx, log, span, cerr, result.Duration)
		return result, cerr
	}

	customer := s.generator.Customer(index)
	body, err := payload.EncodeCustomer(payload.CustomerFrom(customer))
	if err != nil {
		return fail(errors.StageBuildCustomer, err)
	}
	if err := validate(s.customerSchema, body); err != nil {
		return fail(errors.StageBuildCustomer, err)
	}

	created, err := s.api.CreateCustomer(ctx, body)
	if err != nil {
		return fail(errors.StageCreateCustomer, err)
	}
	result.State = StateCustomerCreated
	result.Location = created.Location
	result.CreateStatus = created.StatusCode
	metrics.CustomersCreated.Inc()
	span.SetAttributes(attribute.String("customer.location", created.Location))

	log.Info("Added customer", map[string]interface{}{
		"location":   created.Location,
		"statusCode": created.StatusCode,
	})

	methods := s.generator.ContactMethods()
	result.Kinds = methods.Kinds()
	body, err = payload.EncodeContactMethods(methods.Strings())
	if err != nil {
		return fail(errors.StageBuildContacts, err)
	}
	if err := validate(s.methodsSchema, body); err != nil {
		return fail(errors.StageBuildContacts, err)
	}

	status, err := s.api.AddContactMethods(ctx, created.Location, body)
	if err != nil {
		return fail(errors.StageSubmitContacts, err)
	}
	result.State = StateContactsSubmitted
	result.MethodsStatus = status
	for _, k := range result.Kinds {
		metrics.ContactMethodsSubmitted.WithLabelValues(string(k)).Inc()
	}
	metrics.ContactMethodsStatus.WithLabelValues(metrics.StatusClass(status)).Inc()

	log.Info("Added methods", map[string]interface{}{
		"location":   created.Location,
		"statusCode": status,
		"kinds":      result.Kinds,
	})

	result.State = StateDone
	result.Duration = time.Since(start)
	metrics.SubmissionDuration.Observe(result.Duration.Seconds())
	s.obs.RecordCustomerProcessed(ctx, "success")
	s.obs.RecordCustomerDuration(ctx, result.Duration, "success")
	span.SetStatus(codes.Ok, "")
	return result, nil
}

func (s *Service) recordFailure(ctx context.Context, log logger.Logger, span trace.Span, err *errors.CustomerError, d time.Duration) {
	code := errors.ExtractErrorCode(err)
	metrics.SubmissionsFailed.WithLabelValues(string(err.Stage), code).Inc()
	s.obs.RecordCustomerProcessed(ctx, "failed")
	s.obs.RecordCustomerDuration(ctx, d, "failed")

	span.RecordError(err)
	span.SetStatus(codes.Error, code)

	fields := map[string]interface{}{
		"stage":     string(err.Stage),
		"errorCode": code,
		"retryable": errors.IsRetryable(err),
	}
	if err.Location != "" {
		fields["location"] = err.Location
	}
	log.WithError(err.Err).Error("Customer submission failed", fields)
}

// validate is a no-op when payload validation is disabled.
func validate(v *validation.Validator, body []byte) error {
	if v == nil {
		return nil
	}
	res, err := v.ValidateJSON(body)
	if err != nil {
		return err
	}
	if !res.Valid {
		return errors.NewPayloadInvalidError(v.Name(), res.GetErrorMessages())
	}
	return nil
}
