package docstore

import "strconv"

type updateOp int

const (
	uSet updateOp = iota
	uInc
	uPush
	uPull
	uAddToSet
)

type updateAction struct {
	op    updateOp
	field string
	value interface{}
}

// Update is an immutable, composable set of field mutations, mirroring the
// $set/$inc/$push/$pull/$addToSet vocabulary of a Mongo-style update
// document.
type Update struct {
	actions []updateAction
}

func Set(field string, value interface{}) Update {
	return Update{actions: []updateAction{{op: uSet, field: field, value: value}}}
}

func Inc(field string, delta interface{}) Update {
	return Update{actions: []updateAction{{op: uInc, field: field, value: delta}}}
}

func Push(field string, value interface{}) Update {
	return Update{actions: []updateAction{{op: uPush, field: field, value: value}}}
}

func Pull(field string, value interface{}) Update {
	return Update{actions: []updateAction{{op: uPull, field: field, value: value}}}
}

func AddToSet(field string, value interface{}) Update {
	return Update{actions: []updateAction{{op: uAddToSet, field: field, value: value}}}
}

// Combine merges several updates into one applied atomically against a
// single document.
func Combine(updates ...Update) Update {
	var out Update
	for _, u := range updates {
		out.actions = append(out.actions, u.actions...)
	}
	return out
}

// Apply mutates doc in place according to the update's actions.
func (u Update) Apply(doc Document) {
	for _, a := range u.actions {
		applyAction(doc, a)
	}
}

func applyAction(doc Document, a updateAction) {
	switch a.op {
	case uSet:
		setPath(doc, a.field, a.value)
	case uInc:
		cur, _ := getPath(doc, a.field)
		curF, _ := toFloat(cur)
		deltaF, _ := toFloat(a.value)
		setPath(doc, a.field, curF+deltaF)
	case uPush:
		cur, ok := getPath(doc, a.field)
		list, _ := cur.([]interface{})
		if !ok {
			list = []interface{}{}
		}
		list = append(list, a.value)
		setPath(doc, a.field, list)
	case uPull:
		cur, ok := getPath(doc, a.field)
		if !ok {
			return
		}
		list, ok := cur.([]interface{})
		if !ok {
			return
		}
		filtered := make([]interface{}, 0, len(list))
		for _, item := range list {
			if !compareEqual(item, a.value) {
				filtered = append(filtered, item)
			}
		}
		setPath(doc, a.field, filtered)
	case uAddToSet:
		cur, ok := getPath(doc, a.field)
		list, _ := cur.([]interface{})
		if !ok {
			list = []interface{}{}
		}
		for _, item := range list {
			if compareEqual(item, a.value) {
				return
			}
		}
		list = append(list, a.value)
		setPath(doc, a.field, list)
	}
}

// setPath resolves all but the last path segment (creating intermediate
// maps as needed) and assigns value at the final segment, supporting
// numeric segments against existing slices.
func setPath(doc Document, path string, value interface{}) {
	segments := splitPath(path)
	if len(segments) == 1 {
		doc[segments[0]] = value
		return
	}
	var cur interface{} = doc
	for i := 0; i < len(segments)-1; i++ {
		seg := segments[i]
		switch node := cur.(type) {
		case Document:
			next, ok := node[seg]
			if !ok {
				next = Document{}
				node[seg] = next
			}
			cur = next
		case map[string]interface{}:
			next, ok := node[seg]
			if !ok {
				next = map[string]interface{}{}
				node[seg] = next
			}
			cur = next
		case []interface{}:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return
			}
			cur = node[idx]
		default:
			return
		}
	}
	last := segments[len(segments)-1]
	switch node := cur.(type) {
	case Document:
		node[last] = value
	case map[string]interface{}:
		node[last] = value
	case []interface{}:
		idx, err := strconv.Atoi(last)
		if err == nil && idx >= 0 && idx < len(node) {
			node[idx] = value
		}
	}
}

func splitPath(path string) []string {
	var out []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			out = append(out, path[start:i])
			start = i + 1
		}
	}
	out = append(out, path[start:])
	return out
}
