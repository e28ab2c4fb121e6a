package template

import (
	"fmt"
	"reflect"
	"strings"
)

// node is one parsed piece of a template: either literal text, a variable
// interpolation, or a section (normal or inverted) with its own child
// nodes.
type node struct {
	text     string
	variable string
	inverted bool
	section  bool
	children []node
}

// parse turns raw mustache source into a flat list of top-level nodes,
// recursing into matching {{#x}}...{{/x}} / {{^x}}...{{/x}} pairs.
func parse(src string) ([]node, error) {
	nodes, rest, err := parseUntil(src, "")
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, fmt.Errorf("unexpected trailing content after template end: %q", rest)
	}
	return nodes, nil
}

// parseUntil parses nodes until it either exhausts src or encounters the
// closing tag for `closeName` (non-empty when parsing inside a section),
// returning the nodes found and whatever source remains unconsumed.
func parseUntil(src, closeName string) ([]node, string, error) {
	var nodes []node
	for {
		start := strings.Index(src, "{{")
		if start == -1 {
			nodes = append(nodes, node{text: src})
			return nodes, "", nil
		}
		if start > 0 {
			nodes = append(nodes, node{text: src[:start]})
		}
		end := strings.Index(src[start:], "}}")
		if end == -1 {
			return nil, "", fmt.Errorf("unterminated tag starting at %q", src[start:min(start+20, len(src))])
		}
		end += start
		tag := strings.TrimSpace(src[start+2 : end])
		rest := src[end+2:]

		if closeName != "" && tag == "/"+closeName {
			return nodes, rest, nil
		}

		switch {
		case strings.HasPrefix(tag, "#"):
			name := strings.TrimSpace(tag[1:])
			children, remainder, err := parseUntil(rest, name)
			if err != nil {
				return nil, "", err
			}
			nodes = append(nodes, node{section: true, variable: name, children: children})
			src = remainder
			continue
		case strings.HasPrefix(tag, "^"):
			name := strings.TrimSpace(tag[1:])
			children, remainder, err := parseUntil(rest, name)
			if err != nil {
				return nil, "", err
			}
			nodes = append(nodes, node{section: true, inverted: true, variable: name, children: children})
			src = remainder
			continue
		case strings.HasPrefix(tag, "/"):
			return nil, "", fmt.Errorf("unexpected closing tag %q", tag)
		case strings.HasPrefix(tag, "!"):
			// comment, emit nothing
		default:
			nodes = append(nodes, node{variable: strings.TrimPrefix(tag, "&")})
		}
		src = rest
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Render renders mustache-style template source against data, which may be
// a map[string]interface{} or a struct (including nested structs/slices);
// field/key lookups follow dotted paths. Logic-less: no helpers, no
// expressions, only truthiness-gated sections and list iteration.
func Render(src string, data interface{}) (string, error) {
	nodes, err := parse(src)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := renderNodes(nodes, []interface{}{data}, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// renderNodes writes nodes against a stack of contexts, innermost last;
// lookups search from the innermost context outward (standard mustache
// scoping inside sections).
func renderNodes(nodes []node, stack []interface{}, sb *strings.Builder) error {
	for _, n := range nodes {
		switch {
		case n.section:
			val, ok := lookup(stack, n.variable)
			if n.inverted {
				if !truthy(val) || !ok {
					if err := renderNodes(n.children, stack, sb); err != nil {
						return err
					}
				}
				continue
			}
			if !ok || !truthy(val) {
				continue
			}
			if items, isList := asList(val); isList {
				for _, item := range items {
					if err := renderNodes(n.children, append(stack, item), sb); err != nil {
						return err
					}
				}
			} else {
				if err := renderNodes(n.children, append(stack, val), sb); err != nil {
					return err
				}
			}
		case n.variable != "":
			val, _ := lookup(stack, n.variable)
			sb.WriteString(toString(val))
		default:
			sb.WriteString(n.text)
		}
	}
	return nil
}

// lookup resolves a dotted path against the context stack, innermost
// first.
func lookup(stack []interface{}, path string) (interface{}, bool) {
	if path == "." {
		if len(stack) == 0 {
			return nil, false
		}
		return stack[len(stack)-1], true
	}
	parts := strings.Split(path, ".")
	for i := len(stack) - 1; i >= 0; i-- {
		if v, ok := resolvePath(stack[i], parts); ok {
			return v, true
		}
	}
	return nil, false
}

func resolvePath(root interface{}, parts []string) (interface{}, bool) {
	cur := root
	for _, p := range parts {
		next, ok := field(cur, p)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func field(v interface{}, name string) (interface{}, bool) {
	if v == nil {
		return nil, false
	}
	if m, ok := v.(map[string]interface{}); ok {
		val, ok := m[name]
		return val, ok
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	f := rv.FieldByName(strings.Title(name))
	if !f.IsValid() {
		f = rv.FieldByName(name)
	}
	if !f.IsValid() {
		return nil, false
	}
	return f.Interface(), true
}

func asList(v interface{}) ([]interface{}, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func truthy(v interface{}) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Ptr:
		return !rv.IsNil()
	}
	return true
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
