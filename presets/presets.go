// Package presets holds the built-in format patterns used by the validation
// engine's format predicates. The table is compiled once at process start and
// is read-only afterwards; the locale-specific formats (phone, idcard,
// postalcode) are kept verbatim as configuration data.
package presets

import "regexp"

// Canonical preset names, usable with Lookup.
const (
	NameEmail      = "email"
	NameURL        = "url"
	NamePhone      = "phone"
	NameTel        = "tel"
	NameChinese    = "chinese"
	NameIDCard     = "idcard"
	NameIP         = "ip"
	NamePostalCode = "postalcode"
)

var (
	// Email matches common mailbox addresses. It is deliberately stricter
	// than RFC 5322 (no quoted local parts, no IP-literal domains).
	Email = regexp.MustCompile(`^[\w.+-]+@[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)+$`)

	// URL matches http(s) and protocol-relative URLs with an optional port,
	// path, query and fragment.
	URL = regexp.MustCompile(`^(https?:)?//[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)*(:\d{1,5})?(/[^\s?#]*)?(\?[^\s#]*)?(#\S*)?$`)

	// Phone matches mainland-China mobile numbers.
	Phone = regexp.MustCompile(`^1[3-9]\d{9}$`)

	// Tel matches mainland-China landline numbers with an optional area code.
	Tel = regexp.MustCompile(`^(0\d{2,3}-?)?\d{7,8}$`)

	// Chinese matches strings made up entirely of CJK unified ideographs.
	Chinese = regexp.MustCompile(`^[\x{4e00}-\x{9fa5}]+$`)

	// IDCard matches 15- and 18-digit resident identity card numbers,
	// including the trailing X checksum form.
	IDCard = regexp.MustCompile(`(^\d{15}$)|(^\d{18}$)|(^\d{17}(\d|X|x)$)`)

	// IP matches dotted-quad IPv4 addresses.
	IP = regexp.MustCompile(`^((25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)\.){3}(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)$`)

	// PostalCode matches six-digit mainland-China postal codes.
	PostalCode = regexp.MustCompile(`^[1-9]\d{5}$`)
)

var patterns = map[string]*regexp.Regexp{
	NameEmail:      Email,
	NameURL:        URL,
	NamePhone:      Phone,
	NameTel:        Tel,
	NameChinese:    Chinese,
	NameIDCard:     IDCard,
	NameIP:         IP,
	NamePostalCode: PostalCode,
}

// Lookup returns the compiled preset pattern registered under name.
// The second return value reports whether the name is known.
func Lookup(name string) (*regexp.Regexp, bool) {
	pattern, found := patterns[name]
	return pattern, found
}

// Names returns every registered preset name. The returned slice is a copy
// and may be modified freely by the caller.
func Names() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	return names
}
