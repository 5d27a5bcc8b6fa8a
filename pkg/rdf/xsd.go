package rdf

import (
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aleksaelezovic/quadline/pkg/iri"
)

// XSDNamespace is the namespace of the built-in XML Schema datatypes.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

// Datatype identifies the datatype of a literal. Two datatypes are equal
// when their IRIs are equal.
type Datatype struct {
	iri      iri.IRI
	builtin  bool
	validate func(string) bool
}

// IRI returns the datatype IRI.
func (d *Datatype) IRI() iri.IRI { return d.iri }

func (d *Datatype) String() string { return d.iri.String() }

// Equal reports whether d and other name the same datatype.
func (d *Datatype) Equal(other *Datatype) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d == other || d.iri.Equal(other.iri)
}

// IsString reports whether d is xsd:string.
func (d *Datatype) IsString() bool { return d.Equal(XSDString) }

// IsBuiltin reports whether d is one of the XML Schema built-ins.
func (d *Datatype) IsBuiltin() bool { return d.builtin }

// Validate reports whether lexical is a valid lexical form for d.
// Datatypes without a known lexical space accept everything.
func (d *Datatype) Validate(lexical string) bool {
	if d.validate == nil {
		return true
	}
	return d.validate(lexical)
}

func builtin(local string, validate func(string) bool) *Datatype {
	return &Datatype{iri: iri.MustParse(XSDNamespace + local), builtin: true, validate: validate}
}

var (
	integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
	doublePattern  = regexp.MustCompile(`^([+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?|[+-]?INF|NaN)$`)
)

func validBoolean(s string) bool {
	switch s {
	case "true", "false", "1", "0":
		return true
	}
	return false
}

// integerIn returns a validator for integers within [min, max]; an empty
// bound is unbounded.
func integerIn(min, max string) func(string) bool {
	var lo, hi *big.Int
	if min != "" {
		lo, _ = new(big.Int).SetString(min, 10)
	}
	if max != "" {
		hi, _ = new(big.Int).SetString(max, 10)
	}
	return func(s string) bool {
		if !integerPattern.MatchString(s) {
			return false
		}
		n, ok := new(big.Int).SetString(strings.TrimPrefix(s, "+"), 10)
		if !ok {
			return false
		}
		if lo != nil && n.Cmp(lo) < 0 {
			return false
		}
		if hi != nil && n.Cmp(hi) > 0 {
			return false
		}
		return true
	}
}

func validHexBinary(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil
}

func validBase64Binary(s string) bool {
	_, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(s), ""))
	return err == nil
}

func validTime(layouts ...string) func(string) bool {
	return func(s string) bool {
		for _, layout := range layouts {
			if _, err := time.Parse(layout, s); err == nil {
				return true
			}
		}
		return false
	}
}

// Built-in XML Schema datatypes.
var (
	XSDString             = builtin("string", nil)
	XSDBoolean            = builtin("boolean", validBoolean)
	XSDDecimal            = builtin("decimal", decimalPattern.MatchString)
	XSDFloat              = builtin("float", doublePattern.MatchString)
	XSDDouble             = builtin("double", doublePattern.MatchString)
	XSDInteger            = builtin("integer", integerIn("", ""))
	XSDNonPositiveInteger = builtin("nonPositiveInteger", integerIn("", "0"))
	XSDNegativeInteger    = builtin("negativeInteger", integerIn("", "-1"))
	XSDLong               = builtin("long", integerIn("-9223372036854775808", "9223372036854775807"))
	XSDInt                = builtin("int", integerIn("-2147483648", "2147483647"))
	XSDShort              = builtin("short", integerIn("-32768", "32767"))
	XSDByte               = builtin("byte", integerIn("-128", "127"))
	XSDNonNegativeInteger = builtin("nonNegativeInteger", integerIn("0", ""))
	XSDUnsignedLong       = builtin("unsignedLong", integerIn("0", "18446744073709551615"))
	XSDUnsignedInt        = builtin("unsignedInt", integerIn("0", "4294967295"))
	XSDUnsignedShort      = builtin("unsignedShort", integerIn("0", "65535"))
	XSDUnsignedByte       = builtin("unsignedByte", integerIn("0", "255"))
	XSDPositiveInteger    = builtin("positiveInteger", integerIn("1", ""))
	XSDAnyType            = builtin("anyType", nil)
	XSDAnySimpleType      = builtin("anySimpleType", nil)
	XSDAnyURI             = builtin("anyURI", nil)
	XSDHexBinary          = builtin("hexBinary", validHexBinary)
	XSDBase64Binary       = builtin("base64Binary", validBase64Binary)
	XSDDuration           = builtin("duration", nil)
	XSDDateTime           = builtin("dateTime", validTime(time.RFC3339, "2006-01-02T15:04:05"))
	XSDTime               = builtin("time", validTime("15:04:05Z07:00", "15:04:05"))
	XSDDate               = builtin("date", validTime("2006-01-02Z07:00", "2006-01-02"))
	XSDGYearMonth         = builtin("gYearMonth", nil)
	XSDGYear              = builtin("gYear", nil)
	XSDGMonthDay          = builtin("gMonthDay", nil)
	XSDGDay               = builtin("gDay", nil)
	XSDGMonth             = builtin("gMonth", nil)
)

var builtinDatatypes = indexDatatypes(
	XSDString, XSDBoolean, XSDDecimal, XSDFloat, XSDDouble,
	XSDInteger, XSDNonPositiveInteger, XSDNegativeInteger, XSDLong, XSDInt,
	XSDShort, XSDByte, XSDNonNegativeInteger, XSDUnsignedLong, XSDUnsignedInt,
	XSDUnsignedShort, XSDUnsignedByte, XSDPositiveInteger,
	XSDAnyType, XSDAnySimpleType, XSDAnyURI, XSDHexBinary, XSDBase64Binary,
	XSDDuration, XSDDateTime, XSDTime, XSDDate,
	XSDGYearMonth, XSDGYear, XSDGMonthDay, XSDGDay, XSDGMonth,
)

func indexDatatypes(types ...*Datatype) map[string]*Datatype {
	m := make(map[string]*Datatype, len(types))
	for _, d := range types {
		m[d.iri.Key()] = d
	}
	return m
}

// DatatypeRegistry resolves datatype IRIs to Datatype values. Built-ins are
// shared; any other IRI becomes a custom datatype that is memoized so that
// repeated lookups return the same instance. A registry is owned by a parse
// session and is never evicted.
type DatatypeRegistry struct {
	mu     sync.Mutex
	custom map[string]*Datatype
	order  []*Datatype
}

// NewDatatypeRegistry returns an empty registry.
func NewDatatypeRegistry() *DatatypeRegistry {
	return &DatatypeRegistry{custom: make(map[string]*Datatype)}
}

// Lookup parses s as an IRI and resolves it.
func (r *DatatypeRegistry) Lookup(s string) (*Datatype, error) {
	u, err := iri.Parse(s)
	if err != nil {
		return nil, err
	}
	return r.Resolve(u), nil
}

// Resolve returns the datatype for u, creating a custom one on first use.
func (r *DatatypeRegistry) Resolve(u iri.IRI) *Datatype {
	if d, ok := builtinDatatypes[u.Key()]; ok {
		return d
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.custom[u.Key()]; ok {
		return d
	}
	d := &Datatype{iri: u}
	r.custom[u.Key()] = d
	r.order = append(r.order, d)
	return d
}

// Custom returns the custom datatypes seen so far, in order of first use.
func (r *DatatypeRegistry) Custom() []*Datatype {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Datatype, len(r.order))
	copy(out, r.order)
	return out
}

// numeric helpers shared by the literal constructors

func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatDouble(v float64) string {
	s := strconv.FormatFloat(v, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(n)
}
