package validation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrRuleViolated is the sentinel a custom validator returns to fail its
// rule without overriding the rule's own message.
var ErrRuleViolated = errors.New("rule violated")

// stepResult is the uniform outcome of every chain step. Only the custom
// validator step ever sets message, which then overrides the rule's own
// message in the reported failure.
type stepResult struct {
	pass    bool
	message string
}

func stepPass() stepResult {
	return stepResult{pass: true}
}

func stepFail() stepResult {
	return stepResult{}
}

// chainStep is one independent, swappable check. Extending the chain means
// appending or inserting a step here, the driving loop never changes.
type chainStep struct {
	name  string
	check func(ctx context.Context, rule *Rule, value interface{}) stepResult
}

// defaultChain is the canonical check order. The custom validator runs last,
// after the cheap structural checks, so a misbehaving validator is never
// invoked for a value that already failed a static constraint.
var defaultChain = []chainStep{
	{name: "required", check: checkRequired},
	{name: "type", check: checkType},
	{name: "pattern", check: checkPattern},
	{name: "maxlength", check: checkMaxLength},
	{name: "minlength", check: checkMinLength},
	{name: "enum", check: checkEnum},
	{name: "validator", check: checkValidator},
}

// runChain evaluates one rule against one (already transformed) value,
// short-circuiting on the first failing step. It returns whether the rule
// passed and, on failure, the optional overriding message.
func runChain(ctx context.Context, rule *Rule, value interface{}) (bool, string) {
	for _, step := range defaultChain {
		result := step.check(ctx, rule, value)
		if !result.pass {
			zap.L().Debug("Validation chain step failed",
				zap.String("step", step.name))
			return false, result.message
		}
	}
	return true, ""
}

// checkRequired is the one step that rejects on an empty value; every other
// step treats emptiness as a skip.
func checkRequired(_ context.Context, rule *Rule, value interface{}) stepResult {
	if rule.Required && IsEmpty(value) {
		return stepFail()
	}
	return stepPass()
}

func checkType(_ context.Context, rule *Rule, value interface{}) stepResult {
	if rule.Type == "" || IsEmpty(value) {
		return stepPass()
	}

	predicate, recognized := typePredicates[rule.Type]
	if !recognized {
		zap.L().Warn("Rule references an unrecognized type tag, skipping type check",
			zap.String("type", string(rule.Type)))
		return stepPass()
	}

	if !predicate(value) {
		return stepFail()
	}
	return stepPass()
}

func checkPattern(_ context.Context, rule *Rule, value interface{}) stepResult {
	if rule.Pattern == nil || IsEmpty(value) {
		return stepPass()
	}
	if !rule.Pattern.MatchString(stringify(value)) {
		return stepFail()
	}
	return stepPass()
}

func checkMaxLength(_ context.Context, rule *Rule, value interface{}) stepResult {
	if rule.MaxLength == 0 || IsEmpty(value) {
		return stepPass()
	}
	if rule.MaxLength < 0 {
		zap.L().Warn("Rule maxlength must be a positive integer, skipping check",
			zap.Int("maxlength", rule.MaxLength))
		return stepPass()
	}

	length, measurable := valueLength(value)
	if measurable && length > rule.MaxLength {
		return stepFail()
	}
	return stepPass()
}

func checkMinLength(_ context.Context, rule *Rule, value interface{}) stepResult {
	if rule.MinLength == 0 || IsEmpty(value) {
		return stepPass()
	}
	if rule.MinLength < 0 {
		zap.L().Warn("Rule minlength must be a positive integer, skipping check",
			zap.Int("minlength", rule.MinLength))
		return stepPass()
	}

	length, measurable := valueLength(value)
	if measurable && length < rule.MinLength {
		return stepFail()
	}
	return stepPass()
}

func checkEnum(_ context.Context, rule *Rule, value interface{}) stepResult {
	if rule.Enum == nil || IsEmpty(value) {
		return stepPass()
	}

	member, err := OneOf(value, rule.Enum)
	if err != nil {
		// Unreachable for a non-nil Enum, but a membership check must
		// never turn a content problem into a hard failure.
		zap.L().Warn("Rule enum could not be evaluated, skipping check", zap.Error(err))
		return stepPass()
	}

	if !member {
		return stepFail()
	}
	return stepPass()
}

// checkValidator runs the custom validator and translates every way it can
// fail (error return, ErrRuleViolated sentinel, panic) into the uniform step
// result. No raw error ever escapes the chain into the aggregate layer.
func checkValidator(ctx context.Context, rule *Rule, value interface{}) stepResult {
	if rule.Validator == nil || IsEmpty(value) {
		return stepPass()
	}

	err := invokeValidator(ctx, rule.Validator, value)
	if err == nil {
		return stepPass()
	}

	if errors.Is(err, ErrRuleViolated) || err.Error() == "" {
		return stepFail()
	}
	return stepResult{message: err.Error()}
}

// invokeValidator calls the custom validator with panic recovery: a panic
// carrying a string or an error becomes that failure message, anything else
// fails with the rule's own message.
func invokeValidator(ctx context.Context, validator ValidatorFunc, value interface{}) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			zap.L().Warn("Custom validator panicked", zap.Any("panic", recovered))
			switch payload := recovered.(type) {
			case error:
				err = payload
			case string:
				err = fmt.Errorf("%s", payload)
			default:
				err = ErrRuleViolated
			}
		}
	}()
	return validator(ctx, value)
}
