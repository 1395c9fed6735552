package docstore

import (
	"regexp"
	"strconv"
	"strings"
)

// Document is the generic JSON-shaped representation a Query is evaluated
// against. Collections decode their typed documents into this shape only
// for the duration of a match test.
type Document map[string]interface{}

type op int

const (
	opEq op = iota
	opNe
	opGt
	opGte
	opLt
	opLte
	opIn
	opNin
	opExists
)

type condition struct {
	field   string
	op      op
	value   interface{}
	values  []interface{}
	exists  bool
	pattern *regexp.Regexp
	isRegex bool
}

// Query is an immutable, composable filter, mirroring the $-operator
// vocabulary of a Mongo-style query document: eq, ne, in, nin, gt/gte/lt/lte,
// exists, regex, or, byId.
type Query struct {
	conditions []condition
	anyOf      []Query
}

// Empty matches every document, the zero value of Query.
func Empty() Query { return Query{} }

func Eq(field string, value interface{}) Query {
	return Query{conditions: []condition{{field: field, op: opEq, value: value}}}
}

func Ne(field string, value interface{}) Query {
	return Query{conditions: []condition{{field: field, op: opNe, value: value}}}
}

func Gt(field string, value interface{}) Query {
	return Query{conditions: []condition{{field: field, op: opGt, value: value}}}
}

func Gte(field string, value interface{}) Query {
	return Query{conditions: []condition{{field: field, op: opGte, value: value}}}
}

func Lt(field string, value interface{}) Query {
	return Query{conditions: []condition{{field: field, op: opLt, value: value}}}
}

func Lte(field string, value interface{}) Query {
	return Query{conditions: []condition{{field: field, op: opLte, value: value}}}
}

func In(field string, values ...interface{}) Query {
	return Query{conditions: []condition{{field: field, op: opIn, values: values}}}
}

func Nin(field string, values ...interface{}) Query {
	return Query{conditions: []condition{{field: field, op: opNin, values: values}}}
}

func Exists(field string, exists bool) Query {
	return Query{conditions: []condition{{field: field, op: opExists, exists: exists}}}
}

// Regex matches field against pattern. flags may contain "i" for
// case-insensitivity, matching the common Mongo regex-flag convention.
func Regex(field, pattern, flags string) Query {
	goPattern := pattern
	if strings.Contains(flags, "i") {
		goPattern = "(?i)" + goPattern
	}
	re, err := regexp.Compile(goPattern)
	if err != nil {
		// An unparseable pattern matches nothing rather than panicking a
		// request handler; callers validate user-supplied patterns upstream.
		re = regexp.MustCompile(`$.^`)
	}
	return Query{conditions: []condition{{field: field, op: opEq, isRegex: true, pattern: re}}}
}

// Or matches a document against any of the given sub-queries.
func Or(queries ...Query) Query {
	return Query{anyOf: queries}
}

// And merges the conditions of several queries into one that requires all
// of them; Or-groups are preserved and intersected pointwise, so a document
// must satisfy some branch of every group.
func And(queries ...Query) Query {
	var out Query
	for _, q := range queries {
		out.conditions = append(out.conditions, q.conditions...)
		if len(q.anyOf) == 0 {
			continue
		}
		if len(out.anyOf) == 0 {
			out.anyOf = append(out.anyOf, q.anyOf...)
			continue
		}
		// (a1 | a2) & (b1 | b2) == (a1 & b1) | (a1 & b2) | (a2 & b1) | (a2 & b2)
		product := make([]Query, 0, len(out.anyOf)*len(q.anyOf))
		for _, a := range out.anyOf {
			for _, b := range q.anyOf {
				product = append(product, And(a, b))
			}
		}
		out.anyOf = product
	}
	return out
}

// ByID is a convenience for Eq("id", id).
func ByID(id string) Query {
	return Eq("id", id)
}

// Matches reports whether doc satisfies the query.
func (q Query) Matches(doc Document) bool {
	for _, c := range q.conditions {
		if !matchCondition(doc, c) {
			return false
		}
	}
	if len(q.anyOf) > 0 {
		ok := false
		for _, sub := range q.anyOf {
			if sub.Matches(doc) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func matchCondition(doc Document, c condition) bool {
	val, found := getPath(doc, c.field)
	switch c.op {
	case opExists:
		return found == c.exists
	case opEq:
		if !found {
			return false
		}
		if c.isRegex {
			s, ok := val.(string)
			return ok && c.pattern.MatchString(s)
		}
		return compareEqual(val, c.value)
	case opNe:
		return !found || !compareEqual(val, c.value)
	case opIn:
		if !found {
			return false
		}
		for _, v := range c.values {
			if compareEqual(val, v) {
				return true
			}
		}
		return false
	case opNin:
		if !found {
			return true
		}
		for _, v := range c.values {
			if compareEqual(val, v) {
				return false
			}
		}
		return true
	case opGt, opGte, opLt, opLte:
		if !found {
			return false
		}
		cmp, ok := compareOrdered(val, c.value)
		if !ok {
			return false
		}
		switch c.op {
		case opGt:
			return cmp > 0
		case opGte:
			return cmp >= 0
		case opLt:
			return cmp < 0
		case opLte:
			return cmp <= 0
		}
	}
	return false
}

// getPath resolves dot-separated paths against nested maps and, for
// numeric segments, slices — e.g. "decks.0" reaches into decks[0].
func getPath(v interface{}, path string) (interface{}, bool) {
	segments := strings.Split(path, ".")
	cur := v
	for _, seg := range segments {
		switch node := cur.(type) {
		case Document:
			val, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = val
		case map[string]interface{}:
			val, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = val
		case []interface{}:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

func compareEqual(a, b interface{}) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return a == b
}

func compareOrdered(a, b interface{}) (int, bool) {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs), true
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
