package validation

import (
	"context"
	"sync"

	"github.com/verifield/verifield/errors"
	"go.uber.org/zap"
)

// MessageHookFunc is the engine-level callback notified with the resolved
// failure message whenever a rule without its own MessageFunc fails.
type MessageHookFunc func(message string)

// Config is the construction input for an Engine.
type Config struct {
	// Rules maps each field name to a Rule or an ordered sequence of
	// Rules. Required.
	Rules Rules

	// Transform optionally maps a field name to a pure value-mapping
	// function applied before validating that field.
	Transform map[string]TransformFunc

	// MessageHook is optionally invoked with the resolved message
	// whenever a rule without a per-rule MessageFunc fails. Validate
	// evaluates fields concurrently, so the hook may be called from
	// multiple goroutines at once.
	MessageHook MessageHookFunc
}

// Engine validates flat data objects against a per-field rule configuration.
// It is immutable after construction and holds no per-call state, so one
// instance may serve concurrent Validate and ValidateField calls.
type Engine struct {
	fields      map[string][]*Rule
	transform   map[string]TransformFunc
	messageHook MessageHookFunc
}

// New builds an Engine from the configuration. It returns a
// *errors.ConfigError when the rules mapping is nil or an entry is not a
// Rule or sequence of Rules; malformed rule *content* is never rejected
// here, it degrades per check with a diagnostic.
func New(config Config) (*Engine, error) {
	fields, err := normalizeRules(config.Rules)
	if err != nil {
		return nil, err
	}

	transform := make(map[string]TransformFunc, len(config.Transform))
	for field, fn := range config.Transform {
		if fn != nil {
			transform[field] = fn
		}
	}

	return &Engine{
		fields:      fields,
		transform:   transform,
		messageHook: config.MessageHook,
	}, nil
}

// Fields returns the configured field names in no particular order.
func (e *Engine) Fields() []string {
	fields := make([]string, 0, len(e.fields))
	for field := range e.fields {
		fields = append(fields, field)
	}
	return fields
}

// Validate evaluates every configured field of data concurrently and waits
// for all of them to settle; it never short-circuits the batch on one
// field's failure. It returns nil on full success, an errors.Failures map
// with one entry per failing field otherwise, and a *errors.ConfigError
// immediately when data is nil.
func (e *Engine) Validate(ctx context.Context, data map[string]interface{}) error {
	if data == nil {
		return errors.NewConfigError("data must be a non-nil map", nil)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures = errors.Failures{}
	)

	for field := range e.fields {
		wg.Add(1)
		go func(field string) {
			defer wg.Done()
			if fieldErr := e.validateField(ctx, field, data); fieldErr != nil {
				mu.Lock()
				failures[field] = fieldErr
				mu.Unlock()
			}
		}(field)
	}
	wg.Wait()

	if len(failures) > 0 {
		zap.L().Debug("Validation failed", zap.Strings("fields", failures.Fields()))
		return failures
	}
	return nil
}

// ValidateField evaluates a single field of data. It returns nil on success
// (including the vacuous pass for an unconfigured field), the failing
// *errors.FieldError otherwise, and a *errors.ConfigError immediately when
// data is nil.
func (e *Engine) ValidateField(ctx context.Context, field string, data map[string]interface{}) error {
	if data == nil {
		return errors.NewConfigError("data must be a non-nil map", nil)
	}
	if fieldErr := e.validateField(ctx, field, data); fieldErr != nil {
		return fieldErr
	}
	return nil
}

// validateField drives the chain across every rule configured for the
// field, applying the field transform first. The first failing check of the
// first failing rule stops evaluation and produces the failure record.
func (e *Engine) validateField(ctx context.Context, field string, data map[string]interface{}) *errors.FieldError {
	rules := e.fields[field]
	if len(rules) == 0 {
		// Vacuous pass: a field with no configured rules is always valid.
		return nil
	}

	value := data[field]
	if transform := e.transform[field]; transform != nil {
		value = transform(value)
	}

	for _, rule := range rules {
		passed, override := runChain(ctx, rule, value)
		if passed {
			continue
		}

		// The reported rule is a derived copy with the message resolved;
		// the configured rule itself is never mutated.
		failed := *rule
		failed.Message = resolveMessage(rule, override)
		e.dispatchMessage(&failed)

		return &errors.FieldError{
			Field:   field,
			Message: failed.Message,
			Rule:    &failed,
		}
	}
	return nil
}
