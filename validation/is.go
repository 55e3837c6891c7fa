package validation

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"time"
	"unicode"

	"github.com/verifield/verifield/errors"
	"github.com/verifield/verifield/presets"
)

// IsEmpty reports whether the value counts as "not present": nil (which is
// also what an absent map key yields) or the empty string. This is the sole
// presence definition used by the required check and by every other chain
// step's empty short-circuit.
func IsEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// IsString reports whether the value is a string.
func IsString(value interface{}) bool {
	_, ok := value.(string)
	return ok
}

// IsBoolean reports whether the value is a bool.
func IsBoolean(value interface{}) bool {
	_, ok := value.(bool)
	return ok
}

// IsFunction reports whether the value is callable.
func IsFunction(value interface{}) bool {
	if value == nil {
		return false
	}
	return reflect.ValueOf(value).Kind() == reflect.Func
}

// IsRegexp reports whether the value is a compiled regular expression.
func IsRegexp(value interface{}) bool {
	_, ok := value.(*regexp.Regexp)
	return ok
}

// IsArray reports whether the value is a slice or an array.
func IsArray(value interface{}) bool {
	if value == nil {
		return false
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// IsObject reports whether the value is an "object but not array": a map or
// a struct. time.Time is excluded, it classifies as a date instead.
func IsObject(value interface{}) bool {
	if value == nil {
		return false
	}
	if _, isTime := value.(time.Time); isTime {
		return false
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Struct:
		return true
	default:
		return false
	}
}

// IsDate reports whether the value exposes calendar accessors and carries a
// valid timestamp, i.e. it is a non-zero time.Time.
func IsDate(value interface{}) bool {
	t, ok := value.(time.Time)
	return ok && !t.IsZero()
}

// numericValue extracts the value as a float64 if it is of any numeric type.
func numericValue(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// IsNumber reports whether the value is numeric. The not-a-number sentinel
// is excluded; the infinities are accepted.
func IsNumber(value interface{}) bool {
	n, ok := numericValue(value)
	return ok && !math.IsNaN(n)
}

// IsInteger reports whether the value is a number whose truncation equals
// itself. The infinities do not qualify.
func IsInteger(value interface{}) bool {
	n, ok := numericValue(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return false
	}
	return math.Trunc(n) == n
}

// IsFloat reports whether the value is a number but not an integer.
func IsFloat(value interface{}) bool {
	return IsNumber(value) && !IsInteger(value)
}

// dateLayouts are tried in order by IsValidDate.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// IsValidDate reports whether the value is not itself numeric but parses
// into a valid calendar date. A time.Time value qualifies directly.
func IsValidDate(value interface{}) bool {
	if IsNumber(value) {
		return false
	}
	if IsDate(value) {
		return true
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// matchesPreset applies one preset pattern to a string value. Non-string
// values never match a format preset.
func matchesPreset(name string, value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	pattern, found := presets.Lookup(name)
	if !found {
		return false
	}
	return pattern.MatchString(s)
}

// IsEmail reports whether the value matches the email preset.
func IsEmail(value interface{}) bool { return matchesPreset(presets.NameEmail, value) }

// IsURL reports whether the value matches the url preset.
func IsURL(value interface{}) bool { return matchesPreset(presets.NameURL, value) }

// IsPhone reports whether the value matches the mobile phone preset.
func IsPhone(value interface{}) bool { return matchesPreset(presets.NamePhone, value) }

// IsTel reports whether the value matches the landline preset.
func IsTel(value interface{}) bool { return matchesPreset(presets.NameTel, value) }

// IsChinese reports whether the value matches the chinese-text preset.
func IsChinese(value interface{}) bool { return matchesPreset(presets.NameChinese, value) }

// IsIDCard reports whether the value matches the identity card preset.
func IsIDCard(value interface{}) bool { return matchesPreset(presets.NameIDCard, value) }

// IsIP reports whether the value matches the IPv4 preset.
func IsIP(value interface{}) bool { return matchesPreset(presets.NameIP, value) }

// IsPostalCode reports whether the value matches the postal code preset.
func IsPostalCode(value interface{}) bool { return matchesPreset(presets.NamePostalCode, value) }

// OneOf reports whether the value is a member of list. A nil list is a
// configuration error, not a failed membership.
func OneOf(value interface{}, list []interface{}) (bool, error) {
	if list == nil {
		return false, errors.NewConfigError("OneOf requires a non-nil list", nil)
	}
	for _, candidate := range list {
		if reflect.DeepEqual(value, candidate) {
			return true, nil
		}
	}
	return false, nil
}

// Capitalize returns the string with its first rune upper-cased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// valueLength returns the length of the value for the length-bound checks:
// rune count for strings, element count for slices, arrays and maps. The
// second return value reports whether the value has a length at all; values
// without one (numbers, booleans) are skipped by the length checks.
func valueLength(value interface{}) (int, bool) {
	if s, ok := value.(string); ok {
		return len([]rune(s)), true
	}
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// stringify renders the value for a pattern match: strings pass through,
// everything else goes through the default formatting.
func stringify(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
