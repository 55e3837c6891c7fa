package validation

import (
	"context"
	"fmt"
	"regexp"

	"github.com/verifield/verifield/errors"
	"go.uber.org/zap"
)

// TypeTag names one of the closed set of value classifications a rule's Type
// constraint may reference.
type TypeTag string

const (
	TypeString   TypeTag = "string"
	TypeNumber   TypeTag = "number"
	TypeBoolean  TypeTag = "boolean"
	TypeFunction TypeTag = "function"
	TypeFloat    TypeTag = "float"
	TypeInteger  TypeTag = "integer"
	TypeArray    TypeTag = "array"
	TypeObject   TypeTag = "object"
	TypeDate     TypeTag = "date"
	TypeRegexp   TypeTag = "regexp"
)

// typePredicates maps each recognized TypeTag to its classification
// predicate. The table is the single dispatch point for type checks; an
// unknown tag is one lookup miss, reported as a diagnostic and skipped.
var typePredicates = map[TypeTag]func(interface{}) bool{
	TypeString:   IsString,
	TypeNumber:   IsNumber,
	TypeBoolean:  IsBoolean,
	TypeFunction: IsFunction,
	TypeFloat:    IsFloat,
	TypeInteger:  IsInteger,
	TypeArray:    IsArray,
	TypeObject:   IsObject,
	TypeDate:     IsDate,
	TypeRegexp:   IsRegexp,
}

// ValidatorFunc is a custom per-rule validator. A nil return passes. An
// error that is (or wraps) ErrRuleViolated, or whose message is empty, fails
// the rule with the rule's own message; any other error fails the rule and
// its text becomes the overriding failure message. Validators may block, for
// example on a network round trip; the engine runs them to completion and
// honours no timeout of its own, so callers wanting one must wrap the
// validator with a context deadline.
type ValidatorFunc func(ctx context.Context, value interface{}) error

// TransformFunc is a pure value-mapping function applied to a field's raw
// value before any of its rules are evaluated.
type TransformFunc func(value interface{}) interface{}

// MessageFunc is a side-effecting notification hook carried by a single
// rule. When set, it is invoked with the resolved failure message instead of
// the engine-level message hook.
type MessageFunc func(message string)

// Rule is one validation constraint configuration for a field. Zero-valued
// constraints are unset. A Rule is immutable once handed to an engine; the
// failure reported for it is a derived copy carrying the resolved message,
// never a mutation of the original.
type Rule struct {
	// Required rejects empty values ("" or nil/absent).
	Required bool

	// Type classifies the value against one of the recognized TypeTags.
	Type TypeTag

	// Pattern must match the value's string form.
	Pattern *regexp.Regexp

	// Validator is the custom check; it runs last in the chain.
	Validator ValidatorFunc

	// MaxLength caps the value's length (runes for strings, elements for
	// slices and maps). Zero means unset; a negative bound is malformed
	// and skipped with a diagnostic.
	MaxLength int

	// MinLength is the symmetric lower bound.
	MinLength int

	// Enum restricts the value to a fixed set of members.
	Enum []interface{}

	// Message is the failure message reported when no validator override
	// is produced.
	Message string

	// MessageFunc, when set, is notified with the resolved message on
	// failure instead of the engine-level hook.
	MessageFunc MessageFunc
}

// hasConstraints reports whether the rule carries at least one recognized
// predicate key. A rule without any always passes.
func (r *Rule) hasConstraints() bool {
	return r.Required ||
		r.Type != "" ||
		r.Pattern != nil ||
		r.Validator != nil ||
		r.MaxLength != 0 ||
		r.MinLength != 0 ||
		r.Enum != nil
}

// Rules maps a field name to its rule configuration: a single Rule, a *Rule,
// or an ordered []Rule / []*Rule sequence. Order is significant, rules
// execute in the sequence given.
type Rules map[string]interface{}

// normalizeRules converts the caller-supplied configuration into the
// internal field→ordered-rule-list mapping, wrapping lone rules into a
// single-element sequence. Rule *content* is not validated here; malformed
// content degrades lazily per check.
func normalizeRules(rules Rules) (map[string][]*Rule, error) {
	if rules == nil {
		return nil, errors.NewConfigError("rules must be a non-nil map", nil)
	}

	normalized := make(map[string][]*Rule, len(rules))
	for field, entry := range rules {
		specs, err := normalizeEntry(field, entry)
		if err != nil {
			return nil, err
		}
		normalized[field] = specs
	}
	return normalized, nil
}

func normalizeEntry(field string, entry interface{}) ([]*Rule, error) {
	switch specs := entry.(type) {
	case Rule:
		return []*Rule{copyRule(field, &specs)}, nil
	case *Rule:
		if specs == nil {
			return nil, errors.NewConfigError(fmt.Sprintf("field '%s': rule must not be nil", field), nil)
		}
		return []*Rule{copyRule(field, specs)}, nil
	case []Rule:
		out := make([]*Rule, 0, len(specs))
		for i := range specs {
			out = append(out, copyRule(field, &specs[i]))
		}
		return out, nil
	case []*Rule:
		out := make([]*Rule, 0, len(specs))
		for _, spec := range specs {
			if spec == nil {
				return nil, errors.NewConfigError(fmt.Sprintf("field '%s': rule must not be nil", field), nil)
			}
			out = append(out, copyRule(field, spec))
		}
		return out, nil
	default:
		return nil, errors.NewConfigError(
			fmt.Sprintf("field '%s': rules entry must be a Rule or a sequence of Rules, got %T", field, entry), nil)
	}
}

// copyRule snapshots the caller's rule so later mutations of the original
// cannot leak into the engine, and emits the no-constraint diagnostic once
// at construction.
func copyRule(field string, spec *Rule) *Rule {
	if !spec.hasConstraints() {
		zap.L().Warn("Rule carries no recognized constraint, it will always pass",
			zap.String("field", field))
	}
	snapshot := *spec
	return &snapshot
}
