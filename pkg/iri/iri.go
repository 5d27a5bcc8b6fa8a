// Package iri parses absolute IRIs into their components and renders them
// back through a single canonical serialization.
//
// An IRI is an immutable value. Parse is the only fallible operation; every
// accessor and both serializations (String and Key) are pure.
package iri

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidIRI is matched by every error returned from Parse.
var ErrInvalidIRI = errors.New("invalid IRI")

// Error describes why an input string is not a valid IRI.
type Error struct {
	Input  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid IRI %q: %s", e.Input, e.Reason)
}

func (e *Error) Unwrap() error { return ErrInvalidIRI }

func invalid(input, format string, args ...any) error {
	return &Error{Input: input, Reason: fmt.Sprintf(format, args...)}
}

// fragmentForbidden lists the characters a fragment may not contain.
const fragmentForbidden = `#%^\{}[]|`

// Authority is the "//user:password@host:port" part of an IRI.
type Authority struct {
	User        string
	Password    string
	HasUserInfo bool
	HasPassword bool
	Host        string
	Port        uint16
	HasPort     bool
}

func (a Authority) String() string {
	var b strings.Builder
	if a.HasUserInfo {
		b.WriteString(a.User)
		if a.HasPassword {
			b.WriteByte(':')
			b.WriteString(a.Password)
		}
		b.WriteByte('@')
	}
	b.WriteString(a.Host)
	if a.HasPort {
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(a.Port), 10))
	}
	return b.String()
}

// Pair is a single key=value entry of a query.
type Pair struct {
	Key   string
	Value string
}

// Query holds the key=value pairs of an IRI query in the order they were
// written.
type Query struct {
	pairs []Pair
}

// Pairs returns a copy of the query pairs in their original order.
func (q Query) Pairs() []Pair {
	return slices.Clone(q.pairs)
}

// Get returns the value of the first pair with the given key.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

func (q Query) String() string {
	return joinPairs(q.pairs)
}

func (q Query) sortedString() string {
	sorted := slices.Clone(q.pairs)
	slices.SortStableFunc(sorted, func(a, b Pair) int {
		if c := cmp.Compare(a.Key, b.Key); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return joinPairs(sorted)
}

func joinPairs(pairs []Pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// IRI is a parsed absolute identifier.
type IRI struct {
	scheme      string
	authority   Authority
	hasAuth     bool
	path        string
	hasPath     bool
	query       Query
	hasQuery    bool
	fragment    string
	hasFragment bool

	str string
	key string
}

// Parse parses an absolute IRI. Leading and trailing whitespace is ignored;
// whitespace anywhere else is rejected.
func Parse(s string) (IRI, error) {
	in := strings.TrimSpace(s)
	if strings.IndexFunc(in, unicode.IsSpace) >= 0 {
		return IRI{}, invalid(s, "whitespace is not allowed")
	}

	colon := strings.IndexByte(in, ':')
	if colon < 0 {
		return IRI{}, invalid(s, "expected ':' after scheme")
	}
	if colon == 0 {
		return IRI{}, invalid(s, "empty scheme")
	}

	u := IRI{scheme: in[:colon]}
	rest := in[colon+1:]

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		auth, err := parseAuthority(s, rest[:end])
		if err != nil {
			return IRI{}, err
		}
		u.authority = auth
		u.hasAuth = true
		rest = rest[end:]
	}

	if rest != "" && rest[0] != '?' && rest[0] != '#' {
		if u.hasAuth && rest[0] != '/' {
			return IRI{}, invalid(s, "authority is set but path does not begin with '/'")
		}
		end := strings.IndexAny(rest, "?#")
		if end < 0 {
			end = len(rest)
		}
		u.path = rest[:end]
		u.hasPath = true
		rest = rest[end:]
	}

	if strings.HasPrefix(rest, "?") {
		end := strings.IndexByte(rest, '#')
		if end < 0 {
			end = len(rest)
		}
		q, err := parseQuery(s, rest[1:end])
		if err != nil {
			return IRI{}, err
		}
		u.query = q
		u.hasQuery = true
		rest = rest[end:]
	}

	if strings.HasPrefix(rest, "#") {
		frag := rest[1:]
		if i := strings.IndexAny(frag, fragmentForbidden); i >= 0 {
			return IRI{}, invalid(s, "character %q not allowed in fragment", frag[i])
		}
		u.fragment = frag
		u.hasFragment = true
	}

	u.str = u.build(false)
	u.key = u.build(true)
	return u, nil
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(s string) IRI {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// IsValid reports whether s parses as an IRI.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func parseAuthority(input, s string) (Authority, error) {
	var a Authority
	hostport := s
	if at := strings.LastIndexByte(s, '@'); at >= 0 {
		user := s[:at]
		hostport = s[at+1:]
		a.HasUserInfo = true
		if c := strings.IndexByte(user, ':'); c >= 0 {
			a.User = user[:c]
			a.Password = user[c+1:]
			a.HasPassword = true
		} else {
			a.User = user
		}
	}

	host, port := hostport, ""
	if strings.HasPrefix(hostport, "[") {
		end := strings.IndexByte(hostport, ']')
		if end < 0 {
			return Authority{}, invalid(input, "unterminated IP literal host")
		}
		host = hostport[:end+1]
		after := hostport[end+1:]
		if after != "" {
			if after[0] != ':' {
				return Authority{}, invalid(input, "unexpected %q after IP literal host", after)
			}
			port = after[1:]
		}
	} else if c := strings.IndexByte(hostport, ':'); c >= 0 {
		host = hostport[:c]
		port = hostport[c+1:]
	}
	a.Host = host

	if port != "" {
		n, err := strconv.ParseUint(port, 10, 16)
		if err != nil {
			return Authority{}, invalid(input, "expected number as port, got %q", port)
		}
		a.Port = uint16(n)
		a.HasPort = true
	}
	return a, nil
}

func parseQuery(input, s string) (Query, error) {
	var q Query
	for _, part := range strings.Split(s, "&") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return Query{}, invalid(input, "query part %q is not a key=value pair", part)
		}
		q.pairs = append(q.pairs, Pair{Key: k, Value: v})
	}
	return q, nil
}

func (u IRI) build(sortQuery bool) string {
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteByte(':')
	if u.hasAuth {
		b.WriteString("//")
		b.WriteString(u.authority.String())
	}
	if u.hasPath {
		b.WriteString(u.path)
	}
	if u.hasQuery {
		b.WriteByte('?')
		if sortQuery {
			b.WriteString(u.query.sortedString())
		} else {
			b.WriteString(u.query.String())
		}
	}
	if u.hasFragment {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
	return b.String()
}

// Scheme returns the scheme without the trailing ':'.
func (u IRI) Scheme() string { return u.scheme }

// Authority returns the authority component, if present.
func (u IRI) Authority() (Authority, bool) { return u.authority, u.hasAuth }

// Path returns the path. It is "/" when the input had no path; String and
// Key still omit it in that case.
func (u IRI) Path() string {
	if !u.hasPath {
		return "/"
	}
	return u.path
}

// Query returns the query component, if present.
func (u IRI) Query() (Query, bool) { return u.query, u.hasQuery }

// Fragment returns the fragment without the leading '#', if present.
func (u IRI) Fragment() (string, bool) { return u.fragment, u.hasFragment }

// String returns the canonical serialization, preserving query order.
func (u IRI) String() string { return u.str }

// Key returns the serialization used for equality and hashing. Query pairs
// are sorted, so two IRIs differing only in query order share a key.
func (u IRI) Key() string { return u.key }

// Equal reports whether u and other denote the same IRI.
func (u IRI) Equal(other IRI) bool { return u.key == other.key }

// IsZero reports whether u is the zero IRI (never returned by Parse).
func (u IRI) IsZero() bool { return u.scheme == "" }
