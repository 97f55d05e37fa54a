package cmdref

import (
	"fmt"
	"regexp"
	"strings"

	cnuerrors "github.com/1mrobas/cisco-network-node-utils/pkg/errors"
)

// placeholderPattern matches a <name> substitution token.
var placeholderPattern = regexp.MustCompile(`<\w+>`)

// FieldKind tags how a resolved field behaves when accessed.
type FieldKind int

const (
	// FieldStatic returns its fixed value regardless of arguments.
	FieldStatic FieldKind = iota
	// FieldNamedTemplate substitutes <name> tokens from named arguments
	// and drops lines that still contain unresolved tokens.
	FieldNamedTemplate
	// FieldPositionalTemplate substitutes printf-style markers from
	// positional arguments, consuming them left to right across lines.
	FieldPositionalTemplate
)

func (k FieldKind) String() string {
	switch k {
	case FieldStatic:
		return "static"
	case FieldNamedTemplate:
		return "named template"
	case FieldPositionalTemplate:
		return "printf template"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// FieldValue is the resolved value of one entry field together with the
// behavior synthesized for it at construction time. Invocation
// dispatches on the kind tag.
type FieldValue struct {
	kind  FieldKind
	value any   // static form, with /…/ strings compiled
	lines []any // template forms, raw lines
	argc  int   // printf form, required argument count
}

// Kind returns the behavior tag.
func (f *FieldValue) Kind() FieldKind { return f.kind }

// ArgCount returns the required positional argument count. Zero for
// static and named-template fields.
func (f *FieldValue) ArgCount() int { return f.argc }

// Static returns the fixed value of a static field, or nil for template
// fields.
func (f *FieldValue) Static() any { return f.value }

func (f *FieldValue) String() string {
	switch f.kind {
	case FieldNamedTemplate:
		return fmt.Sprintf("named template (%d lines)", len(f.lines))
	case FieldPositionalTemplate:
		return fmt.Sprintf("printf template (%d args)", f.argc)
	}
	return "static"
}

// Invoke evaluates the field. Static fields ignore arguments. Named
// templates take zero arguments or a single map argument. Positional
// templates require exactly ArgCount arguments.
func (f *FieldValue) Invoke(args ...any) (any, error) {
	switch f.kind {
	case FieldNamedTemplate:
		named, err := namedArgs(args)
		if err != nil {
			return nil, err
		}
		return f.renderNamed(named)
	case FieldPositionalTemplate:
		return f.renderPositional(args)
	default:
		return f.value, nil
	}
}

// renderNamed substitutes each <name> token with the string form of the
// matching argument. A line still carrying an unresolved token after
// substitution is dropped: lines are independently optional based on
// which arguments the caller supplied.
func (f *FieldValue) renderNamed(args map[string]any) ([]any, error) {
	out := make([]any, 0, len(f.lines))
	for _, line := range f.lines {
		s, ok := line.(string)
		if !ok {
			out = append(out, line)
			continue
		}
		for name, value := range args {
			s = strings.ReplaceAll(s, "<"+name+">", fmt.Sprint(value))
		}
		if placeholderPattern.MatchString(s) {
			continue
		}
		v, err := convertString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// renderPositional substitutes printf markers left to right, each line
// consuming exactly as many leading arguments as it has markers.
func (f *FieldValue) renderPositional(args []any) ([]any, error) {
	if len(args) != f.argc {
		return nil, cnuerrors.Newf(cnuerrors.ErrCodeBadArguments,
			"requires %d arguments, given %d", f.argc, len(args))
	}
	out := make([]any, 0, len(f.lines))
	next := 0
	for _, line := range f.lines {
		s, ok := line.(string)
		if !ok {
			out = append(out, line)
			continue
		}
		n := countVerbs(s)
		rendered := fmt.Sprintf(s, args[next:next+n]...)
		next += n
		v, err := convertString(rendered)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// namedArgs coerces the variadic argument list of a named-template
// invocation into one substitution map.
func namedArgs(args []any) (map[string]any, error) {
	switch len(args) {
	case 0:
		return nil, nil
	case 1:
		switch t := args[0].(type) {
		case map[string]any:
			return t, nil
		case map[string]string:
			out := make(map[string]any, len(t))
			for k, v := range t {
				out[k] = v
			}
			return out, nil
		}
	}
	return nil, cnuerrors.New(cnuerrors.ErrCodeBadArguments,
		"named template takes a single map of substitution arguments")
}

// countVerbs counts printf conversion markers in a line. A doubled %%
// is a literal percent, not a marker.
func countVerbs(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '%' {
			i++
			continue
		}
		n++
	}
	return n
}

// convertString compiles "/pattern/" strings into case-sensitive and
// "/pattern/i" strings into case-insensitive regular expressions. Other
// strings pass through unchanged.
func convertString(s string) (any, error) {
	var pattern string
	switch {
	case len(s) > 3 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/i"):
		pattern = "(?i)" + s[1:len(s)-2]
	case len(s) > 2 && strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/"):
		pattern = s[1 : len(s)-1]
	default:
		return s, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, cnuerrors.Wrapf(cnuerrors.ErrCodeLoad, err, "bad pattern %q", s)
	}
	return re, nil
}

// convertValue applies convertString through sequences. Mappings and
// non-string scalars are returned unchanged.
func convertValue(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return convertString(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			c, err := convertValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	default:
		return v, nil
	}
}

// Entry is the resolved, immutable definition for one (feature,
// attribute) pair. Accessors are synthesized from the resolved field
// mapping when the entry is constructed; the entry never changes
// afterwards and is safe for concurrent reads.
type Entry struct {
	feature string
	name    string
	file    string
	fields  map[string]*FieldValue
	order   []string
}

// newEntry builds an Entry from a fully merged attribute spec.
func newEntry(feature, name string, spec *Spec, file string) (*Entry, error) {
	if spec == nil {
		return nil, cnuerrors.Newf(cnuerrors.ErrCodeConstruction,
			"%s: %s, %s: spec must be a mapping", file, feature, name)
	}
	e := &Entry{
		feature: feature,
		name:    name,
		file:    file,
		fields:  make(map[string]*FieldValue, spec.Len()),
	}
	for _, key := range spec.Keys() {
		raw, _ := spec.Get(key)
		// Command tokens and command templates are always sequences,
		// even when the document wrote a single line.
		if key == FieldConfigGetToken || key == FieldConfigSet {
			raw = toSequence(raw)
		}
		fv, err := newFieldValue(raw)
		if err != nil {
			return nil, cnuerrors.Wrapf(cnuerrors.ErrCodeLoad, err,
				"%s: %s, %s, %s", file, feature, name, key)
		}
		e.fields[key] = fv
		e.order = append(e.order, key)
	}
	return e, nil
}

// newFieldValue classifies a resolved field value and synthesizes its
// accessor behavior.
func newFieldValue(raw any) (*FieldValue, error) {
	if seq, ok := raw.([]any); ok {
		named, argc := classifySequence(seq)
		if named {
			return &FieldValue{kind: FieldNamedTemplate, lines: seq}, nil
		}
		if argc > 0 {
			return &FieldValue{kind: FieldPositionalTemplate, lines: seq, argc: argc}, nil
		}
	}
	value, err := convertValue(raw)
	if err != nil {
		return nil, err
	}
	return &FieldValue{kind: FieldStatic, value: value}, nil
}

// classifySequence reports whether any line carries <name> tokens and
// the total printf marker count across all lines. Placeholder tokens
// take precedence over printf markers.
func classifySequence(seq []any) (named bool, argc int) {
	for _, line := range seq {
		s, ok := line.(string)
		if !ok {
			continue
		}
		if placeholderPattern.MatchString(s) {
			named = true
		}
		argc += countVerbs(s)
	}
	if named {
		argc = 0
	}
	return named, argc
}

// Feature returns the feature name the entry belongs to.
func (e *Entry) Feature() string { return e.feature }

// Name returns the attribute name.
func (e *Entry) Name() string { return e.name }

// File returns the source document the entry was resolved from.
func (e *Entry) File() string { return e.file }

// FieldNames returns the resolved field names in document order.
func (e *Entry) FieldNames() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// HasField is the presence predicate: true when the field resolved to a
// value, false when it is absent or was explicitly set to nil.
func (e *Entry) HasField(name string) bool {
	f, ok := e.fields[name]
	if !ok {
		return false
	}
	return f.kind != FieldStatic || f.value != nil
}

// Field returns the synthesized field accessor, or a "not defined"
// error naming the feature and attribute. Absent fields only fail when
// actually queried.
func (e *Entry) Field(name string) (*FieldValue, error) {
	f, ok := e.fields[name]
	if !ok {
		return nil, cnuerrors.Newf(cnuerrors.ErrCodeFieldUndefined,
			"field %q not defined for feature %q attribute %q", name, e.feature, e.name)
	}
	return f, nil
}

// Value evaluates a field with no arguments.
func (e *Entry) Value(name string) (any, error) {
	f, err := e.Field(name)
	if err != nil {
		return nil, err
	}
	return f.Invoke()
}

// DefaultValue returns the resolved default. An explicitly nil default
// is returned as nil without error; an absent default is an error.
func (e *Entry) DefaultValue() (any, error) {
	return e.Value(FieldDefaultValue)
}

// ConfigGet returns the show command used to read device state.
func (e *Entry) ConfigGet() (any, error) {
	return e.Value(FieldConfigGet)
}

// ConfigGetToken evaluates the token sequence used to parse device
// output. Elements are strings or compiled regular expressions.
func (e *Entry) ConfigGetToken(args ...any) ([]any, error) {
	f, err := e.Field(FieldConfigGetToken)
	if err != nil {
		return nil, err
	}
	v, err := f.Invoke(args...)
	if err != nil {
		return nil, err
	}
	return toSequence(v), nil
}

// ConfigSet renders the CLI command lines that configure the attribute.
func (e *Entry) ConfigSet(args ...any) ([]string, error) {
	f, err := e.Field(FieldConfigSet)
	if err != nil {
		return nil, err
	}
	v, err := f.Invoke(args...)
	if err != nil {
		return nil, err
	}
	seq := toSequence(v)
	out := make([]string, len(seq))
	for i, line := range seq {
		out[i] = fmt.Sprint(line)
	}
	return out, nil
}

// TestConfigResult resolves an expected test result through the
// entry's test_config_result mapping, then through the caller-supplied
// identifier mapping.
//
// Deprecated: the identifier mapping exists for legacy documents whose
// results name symbolic constants. New documents should store literal
// result values instead.
func (e *Entry) TestConfigResult(value any, resolve map[string]any) (any, error) {
	f, err := e.Field(FieldTestConfigResult)
	if err != nil {
		return nil, err
	}
	table, ok := f.value.(*Spec)
	if !ok {
		return nil, cnuerrors.Newf(cnuerrors.ErrCodeConstruction,
			"feature %q attribute %q: test_config_result must be a mapping", e.feature, e.name)
	}
	raw, ok := table.Get(fmt.Sprint(value))
	if !ok {
		return nil, cnuerrors.Newf(cnuerrors.ErrCodeFieldUndefined,
			"no test_config_result for %v on feature %q attribute %q", value, e.feature, e.name)
	}
	if id, isString := raw.(string); isString && resolve != nil {
		if mapped, found := resolve[id]; found {
			return mapped, nil
		}
	}
	return raw, nil
}

// String renders the entry for diagnostics.
func (e *Entry) String() string {
	parts := make([]string, 0, len(e.order))
	for _, name := range e.order {
		parts = append(parts, fmt.Sprintf("%s (%s)", name, e.fields[name]))
	}
	return fmt.Sprintf("%s.%s: %s", e.feature, e.name, strings.Join(parts, ", "))
}
