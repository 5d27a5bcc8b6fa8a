package rdf

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Escape escapes a literal body for output between double quotes, in the
// canonical N-Triples form: named escapes for \t \b \n \r \f \" and \\,
// \uXXXX for other control characters, DEL and the noncharacters U+FFFE
// and U+FFFF.
func Escape(s string) string {
	if !needsEscape(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\f':
			b.WriteString(`\f`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			if r < 0x20 || r == 0x7F || r == 0xFFFE || r == 0xFFFF {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func needsEscape(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == '"' || r == '\\' || r == 0x7F || r == 0xFFFE || r == 0xFFFF {
			return true
		}
	}
	return false
}

// Unescape decodes the escape sequences of a literal body: \t \b \n \r \f
// \" \' \\ \uXXXX and \UXXXXXXXX.
func Unescape(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("dangling escape at end of literal")
		}
		i++
		switch s[i] {
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		case '"', '\'', '\\':
			b.WriteByte(s[i])
		case 'u', 'U':
			width := 4
			if s[i] == 'U' {
				width = 8
			}
			if i+width >= len(s) {
				return "", fmt.Errorf("truncated \\%c escape", s[i])
			}
			code, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil || !utf8.ValidRune(rune(code)) {
				return "", fmt.Errorf("invalid \\%c escape %q", s[i], s[i+1:i+1+width])
			}
			b.WriteRune(rune(code))
			i += width
		default:
			return "", fmt.Errorf("unknown escape \\%c", s[i])
		}
	}
	return b.String(), nil
}

// QuoteDelimiter returns the opening quote delimiter of token: one of
// `"""`, `'''`, `"` or `'`, or "" when token does not start with a quote.
func QuoteDelimiter(token string) string {
	for _, d := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(token, d) {
			return d
		}
	}
	return ""
}

// isEscaped reports whether s[i] is preceded by an odd run of backslashes.
func isEscaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// IndexUnescaped returns the index of the first occurrence of delim at or
// after from that is not escaped, or -1.
func IndexUnescaped(s, delim string, from int) int {
	for start := from; start <= len(s); {
		i := strings.Index(s[start:], delim)
		if i < 0 {
			return -1
		}
		i += start
		if !isEscaped(s, i) {
			return i
		}
		start = i + 1
	}
	return -1
}

// lastIndexUnescaped returns the index of the last unescaped occurrence of
// delim that starts at or after min, or -1.
func lastIndexUnescaped(s, delim string, min int) int {
	end := len(s)
	for {
		i := strings.LastIndex(s[:end], delim)
		if i < min {
			return -1
		}
		if !isEscaped(s, i) {
			return i
		}
		end = i + len(delim) - 1
	}
}
