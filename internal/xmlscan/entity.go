package xmlscan

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var predefinedEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": `"`,
}

// maxEntityLen bounds the search for the terminating ';' of a reference.
const maxEntityLen = 12

// Unescape decodes the five predefined XML entities and numeric character
// references. Anything else, including unknown named entities and invalid
// code points, is left verbatim.
func Unescape(s string) string {
	i := strings.IndexByte(s, '&')
	if i < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i >= 0 {
		b.WriteString(s[:i])
		s = s[i:]
		if r, n := decodeRef(s); n > 0 {
			b.WriteString(r)
			s = s[n:]
		} else {
			b.WriteByte('&')
			s = s[1:]
		}
		i = strings.IndexByte(s, '&')
	}
	b.WriteString(s)
	return b.String()
}

// decodeRef decodes the reference at the start of s ("&...;") and returns the
// replacement and the number of bytes consumed, or 0 when s does not start
// with a reference this package understands.
func decodeRef(s string) (string, int) {
	limit := len(s)
	if limit > maxEntityLen {
		limit = maxEntityLen
	}
	end := strings.IndexByte(s[:limit], ';')
	if end < 2 {
		return "", 0
	}
	name := s[1:end]

	if name[0] != '#' {
		if r, ok := predefinedEntities[name]; ok {
			return r, end + 1
		}
		return "", 0
	}

	var (
		code uint64
		err  error
	)
	if len(name) > 2 && (name[1] == 'x' || name[1] == 'X') {
		code, err = strconv.ParseUint(name[2:], 16, 32)
	} else {
		code, err = strconv.ParseUint(name[1:], 10, 32)
	}
	if err != nil || code == 0 || !utf8.ValidRune(rune(code)) {
		return "", 0
	}
	return string(rune(code)), end + 1
}
