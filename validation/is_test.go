package validation

import (
	"math"
	"regexp"
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	t.Run("Nil is empty", func(t *testing.T) {
		if !IsEmpty(nil) {
			t.Error("Expected nil to be empty")
		}
	})

	t.Run("Empty string is empty", func(t *testing.T) {
		if !IsEmpty("") {
			t.Error("Expected empty string to be empty")
		}
	})

	t.Run("Absent map key is empty", func(t *testing.T) {
		data := map[string]interface{}{}
		if !IsEmpty(data["missing"]) {
			t.Error("Expected absent key to be empty")
		}
	})

	t.Run("Whitespace is not empty", func(t *testing.T) {
		if IsEmpty(" ") {
			t.Error("Expected whitespace to be non-empty")
		}
	})

	t.Run("Zero is not empty", func(t *testing.T) {
		if IsEmpty(0) {
			t.Error("Expected zero to be non-empty")
		}
	})

	t.Run("False is not empty", func(t *testing.T) {
		if IsEmpty(false) {
			t.Error("Expected false to be non-empty")
		}
	})
}

func TestTypeClassification(t *testing.T) {
	cases := []struct {
		name      string
		predicate func(interface{}) bool
		value     interface{}
		expected  bool
	}{
		{"String accepts string", IsString, "hello", true},
		{"String rejects number", IsString, 42, false},

		{"Boolean accepts bool", IsBoolean, true, true},
		{"Boolean rejects string", IsBoolean, "true", false},

		{"Function accepts func", IsFunction, func() {}, true},
		{"Function rejects nil", IsFunction, nil, false},
		{"Function rejects string", IsFunction, "func", false},

		{"Regexp accepts compiled pattern", IsRegexp, regexp.MustCompile(`^a$`), true},
		{"Regexp rejects pattern string", IsRegexp, "^a$", false},

		{"Array accepts slice", IsArray, []int{1, 2}, true},
		{"Array accepts array", IsArray, [2]string{"a", "b"}, true},
		{"Array rejects map", IsArray, map[string]int{}, false},

		{"Object accepts map", IsObject, map[string]interface{}{"a": 1}, true},
		{"Object accepts struct", IsObject, struct{ A int }{1}, true},
		{"Object rejects slice", IsObject, []int{1}, false},
		{"Object rejects time", IsObject, time.Now(), false},
		{"Object rejects nil", IsObject, nil, false},

		{"Date accepts time", IsDate, time.Now(), true},
		{"Date rejects zero time", IsDate, time.Time{}, false},
		{"Date rejects date string", IsDate, "2024-01-01", false},

		{"Number accepts int", IsNumber, 42, true},
		{"Number accepts float", IsNumber, 3.14, true},
		{"Number accepts infinity", IsNumber, math.Inf(1), true},
		{"Number rejects NaN", IsNumber, math.NaN(), false},
		{"Number rejects numeric string", IsNumber, "42", false},

		{"Integer accepts int", IsInteger, 42, true},
		{"Integer accepts whole float", IsInteger, 18.0, true},
		{"Integer rejects fraction", IsInteger, 18.5, false},
		{"Integer rejects infinity", IsInteger, math.Inf(-1), false},
		{"Integer rejects NaN", IsInteger, math.NaN(), false},

		{"Float accepts fraction", IsFloat, 3.14, true},
		{"Float accepts infinity", IsFloat, math.Inf(1), true},
		{"Float rejects whole float", IsFloat, 2.0, false},
		{"Float rejects int", IsFloat, 7, false},
		{"Float rejects string", IsFloat, "3.14", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.predicate(tc.value); got != tc.expected {
				t.Errorf("Expected %v, got %v for value %v", tc.expected, got, tc.value)
			}
		})
	}
}

func TestIsValidDate(t *testing.T) {
	cases := []struct {
		name     string
		value    interface{}
		expected bool
	}{
		{"RFC3339 string", "2024-03-07T10:00:00Z", true},
		{"Plain date string", "2024-03-07", true},
		{"Slash date string", "2024/03/07", true},
		{"Datetime string", "2024-03-07 10:00:00", true},
		{"time.Time value", time.Now(), true},
		{"Numeric value rejected", 1709805600, false},
		{"Garbage string", "not a date", false},
		{"Impossible month", "2024-13-07", false},
		{"Empty string", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidDate(tc.value); got != tc.expected {
				t.Errorf("Expected %v, got %v for %v", tc.expected, got, tc.value)
			}
		})
	}
}

func TestFormatPredicates(t *testing.T) {
	t.Run("Email", func(t *testing.T) {
		if !IsEmail("alice@example.com") {
			t.Error("Expected valid email to pass")
		}
		if IsEmail("not-an-email") {
			t.Error("Expected invalid email to fail")
		}
		if IsEmail(42) {
			t.Error("Expected non-string to fail")
		}
	})

	t.Run("Phone", func(t *testing.T) {
		if !IsPhone("15600001111") {
			t.Error("Expected valid mobile number to pass")
		}
		if IsPhone("156") {
			t.Error("Expected short number to fail")
		}
	})

	t.Run("URL", func(t *testing.T) {
		if !IsURL("https://example.com/a") {
			t.Error("Expected valid url to pass")
		}
		if IsURL("example") {
			t.Error("Expected bare word to fail")
		}
	})

	t.Run("IP", func(t *testing.T) {
		if !IsIP("10.0.0.1") {
			t.Error("Expected valid ip to pass")
		}
		if IsIP("10.0.0.256") {
			t.Error("Expected out-of-range octet to fail")
		}
	})

	t.Run("Chinese", func(t *testing.T) {
		if !IsChinese("验证") {
			t.Error("Expected chinese text to pass")
		}
		if IsChinese("abc") {
			t.Error("Expected ascii text to fail")
		}
	})

	t.Run("IDCard", func(t *testing.T) {
		if !IsIDCard("11010119900307123X") {
			t.Error("Expected valid id card to pass")
		}
		if IsIDCard("123") {
			t.Error("Expected short id card to fail")
		}
	})

	t.Run("Tel", func(t *testing.T) {
		if !IsTel("010-12345678") {
			t.Error("Expected valid landline to pass")
		}
		if IsTel("1") {
			t.Error("Expected short landline to fail")
		}
	})

	t.Run("PostalCode", func(t *testing.T) {
		if !IsPostalCode("100000") {
			t.Error("Expected valid postal code to pass")
		}
		if IsPostalCode("abc") {
			t.Error("Expected non-numeric postal code to fail")
		}
	})
}

func TestOneOf(t *testing.T) {
	t.Run("Member found", func(t *testing.T) {
		member, err := OneOf("b", []interface{}{"a", "b", "c"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !member {
			t.Error("Expected membership to hold")
		}
	})

	t.Run("Member missing", func(t *testing.T) {
		member, err := OneOf("z", []interface{}{"a", "b"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if member {
			t.Error("Expected membership to fail")
		}
	})

	t.Run("Deep equality for composite members", func(t *testing.T) {
		member, err := OneOf([]int{1, 2}, []interface{}{[]int{1, 2}})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !member {
			t.Error("Expected deep-equal slice to be a member")
		}
	})

	t.Run("Nil list is a config error", func(t *testing.T) {
		if _, err := OneOf("a", nil); err == nil {
			t.Error("Expected config error for nil list")
		}
	})
}

func TestCapitalize(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"string", "String"},
		{"Already", "Already"},
		{"", ""},
		{"ärger", "Ärger"},
	}

	for _, tc := range cases {
		if got := Capitalize(tc.input); got != tc.expected {
			t.Errorf("Capitalize(%q): expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestValueLength(t *testing.T) {
	t.Run("String length counts runes", func(t *testing.T) {
		length, measurable := valueLength("你好a")
		if !measurable || length != 3 {
			t.Errorf("Expected rune count 3, got %d (measurable=%v)", length, measurable)
		}
	})

	t.Run("Slice length counts elements", func(t *testing.T) {
		length, measurable := valueLength([]int{1, 2, 3, 4})
		if !measurable || length != 4 {
			t.Errorf("Expected 4 elements, got %d (measurable=%v)", length, measurable)
		}
	})

	t.Run("Numbers are not measurable", func(t *testing.T) {
		if _, measurable := valueLength(42); measurable {
			t.Error("Expected numbers to have no length")
		}
	})

	t.Run("Nil is not measurable", func(t *testing.T) {
		if _, measurable := valueLength(nil); measurable {
			t.Error("Expected nil to have no length")
		}
	})
}
