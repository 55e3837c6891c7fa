package validation

import (
	"encoding/json"
	"math"
	"regexp"
	"sync"

	"github.com/verifield/verifield/errors"
	"go.uber.org/zap"
)

// ruleSourceCache stores rule sets parsed from serialized sources, keyed by
// a caller-chosen source ID, so the same declarative rule file is only
// parsed and compiled once per process.
type ruleSourceCache struct {
	store sync.Map
}

func (c *ruleSourceCache) Get(key string) (Rules, bool) {
	if c == nil || key == "" {
		return nil, false
	}
	if cached, ok := c.store.Load(key); ok {
		if cachedRules, ok := cached.(Rules); ok {
			return cachedRules, true
		}
	}
	return nil, false
}

func (c *ruleSourceCache) Set(key string, value Rules) {
	if c == nil || key == "" || value == nil {
		return
	}
	c.store.Store(key, value)
}

var parsedRuleSources ruleSourceCache

// recognized rule-source keys; anything else draws a diagnostic.
var ruleSourceKeys = map[string]bool{
	"required":  true,
	"type":      true,
	"pattern":   true,
	"maxlength": true,
	"minlength": true,
	"enum":      true,
	"message":   true,
}

// ParseRules decodes a declarative JSON rule source into a Rules mapping.
// The top level must be an object mapping each field name to a rule object
// or an array of rule objects; anything else is a *errors.ConfigError.
// Malformed rule *content* (a pattern that does not compile, a non-positive
// length bound, an enum that is not an array) never fails the parse: the
// offending constraint is dropped with a diagnostic and the rest of the rule
// is kept, so one misconfigured rule cannot block the whole batch.
func ParseRules(source []byte) (Rules, error) {
	var document map[string]json.RawMessage
	if err := json.Unmarshal(source, &document); err != nil {
		return nil, errors.NewConfigError("rule source must be a JSON object keyed by field name", err)
	}

	rules := make(Rules, len(document))
	for field, entry := range document {
		var list []map[string]interface{}
		if err := json.Unmarshal(entry, &list); err == nil {
			specs := make([]Rule, 0, len(list))
			for _, raw := range list {
				specs = append(specs, buildRuleFromSource(field, raw))
			}
			rules[field] = specs
			continue
		}

		var single map[string]interface{}
		if err := json.Unmarshal(entry, &single); err != nil {
			return nil, errors.NewConfigError(
				"field '"+field+"': rule source entry must be an object or an array of objects", err)
		}
		rules[field] = buildRuleFromSource(field, single)
	}
	return rules, nil
}

// LoadRules parses a rule source, reusing the parsed result for subsequent
// calls with the same sourceID. An empty sourceID bypasses the cache.
func LoadRules(sourceID string, source []byte) (Rules, error) {
	if cached, ok := parsedRuleSources.Get(sourceID); ok {
		return cached, nil
	}

	rules, err := ParseRules(source)
	if err != nil {
		return nil, err
	}

	parsedRuleSources.Set(sourceID, rules)
	return rules, nil
}

// buildRuleFromSource coerces one decoded rule object into a Rule, dropping
// each malformed constraint with a diagnostic.
func buildRuleFromSource(field string, raw map[string]interface{}) Rule {
	var rule Rule

	for key, value := range raw {
		if !ruleSourceKeys[key] {
			zap.L().Warn("Rule source carries an unrecognized key, ignoring it",
				zap.String("field", field), zap.String("key", key))
		}

		switch key {
		case "required":
			b, ok := value.(bool)
			if !ok {
				warnRuleSource(field, key, "must be a boolean")
				continue
			}
			rule.Required = b

		case "type":
			s, ok := value.(string)
			if !ok {
				warnRuleSource(field, key, "must be a string")
				continue
			}
			// Unknown tags are kept: the type check itself reports
			// and skips them, matching programmatic construction.
			rule.Type = TypeTag(s)

		case "pattern":
			s, ok := value.(string)
			if !ok {
				warnRuleSource(field, key, "must be a regular expression string")
				continue
			}
			compiled, err := regexp.Compile(s)
			if err != nil {
				zap.L().Warn("Rule source pattern does not compile, dropping it",
					zap.String("field", field), zap.String("pattern", s), zap.Error(err))
				continue
			}
			rule.Pattern = compiled

		case "maxlength":
			bound, ok := positiveIntFromSource(value)
			if !ok {
				warnRuleSource(field, key, "must be a positive integer")
				continue
			}
			rule.MaxLength = bound

		case "minlength":
			bound, ok := positiveIntFromSource(value)
			if !ok {
				warnRuleSource(field, key, "must be a positive integer")
				continue
			}
			rule.MinLength = bound

		case "enum":
			list, ok := value.([]interface{})
			if !ok {
				warnRuleSource(field, key, "must be an array")
				continue
			}
			rule.Enum = list

		case "message":
			s, ok := value.(string)
			if !ok {
				warnRuleSource(field, key, "must be a string")
				continue
			}
			rule.Message = s
		}
	}
	return rule
}

func warnRuleSource(field, key, problem string) {
	zap.L().Warn("Rule source constraint is malformed, dropping it",
		zap.String("field", field), zap.String("key", key), zap.String("problem", problem))
}

// positiveIntFromSource accepts a JSON number that is a positive integer.
func positiveIntFromSource(value interface{}) (int, bool) {
	n, ok := value.(float64)
	if !ok || math.Trunc(n) != n || n <= 0 {
		return 0, false
	}
	return int(n), true
}
