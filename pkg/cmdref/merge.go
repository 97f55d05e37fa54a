package cmdref

import (
	"regexp"
	"strings"

	cnuerrors "github.com/1mrobas/cisco-network-node-utils/pkg/errors"
)

// Field names recognized in attribute specs.
const (
	FieldDefaultValue        = "default_value"
	FieldConfigGet           = "config_get"
	FieldConfigGetToken      = "config_get_token"
	FieldConfigSet           = "config_set"
	FieldTestConfigGet       = "test_config_get"
	FieldTestConfigGetRegex  = "test_config_get_regex"
	FieldTestConfigResult    = "test_config_result"
	fieldConfigGetTokenAppnd = "config_get_token_append"
	fieldConfigSetAppend     = "config_set_append"
)

// entryFields is the fixed set of directly assignable field keys.
var entryFields = map[string]bool{
	FieldDefaultValue:       true,
	FieldConfigGet:          true,
	FieldConfigGetToken:     true,
	FieldConfigSet:          true,
	FieldTestConfigGet:      true,
	FieldTestConfigGetRegex: true,
	FieldTestConfigResult:   true,
}

// appendFields maps each append-variant key to the base field it
// concatenates onto.
var appendFields = map[string]string{
	fieldConfigSetAppend:     FieldConfigSet,
	fieldConfigGetTokenAppnd: FieldConfigGetToken,
}

const elseKey = "else"

// platformFilter describes one named filter key. A cliOnly filter is
// skipped unless the catalog targets the device CLI; a filter with a
// platform is skipped unless the catalog targets that platform.
type platformFilter struct {
	platform string
	cliOnly  bool
}

// platformFilters is the fixed set of platform/CLI filter keys.
var platformFilters = map[string]platformFilter{
	"nexus":      {platform: "nexus"},
	"ios_xr":     {platform: "ios_xr"},
	"cli_nexus":  {platform: "nexus", cliOnly: true},
	"cli_ios_xr": {platform: "ios_xr", cliOnly: true},
}

// isRegexKey reports whether key is a product-id pattern of the form
// "/pattern/".
func isRegexKey(key string) bool {
	return len(key) > 1 && strings.HasPrefix(key, "/") && strings.HasSuffix(key, "/")
}

// target identifies what a merge resolves against: the product id the
// regex keys match, the platform the filter keys name, and whether the
// caller drives the device CLI rather than an API.
type target struct {
	productID string
	platform  string
	cli       bool
}

// mergeSpec resolves input against base for the given target.
//
// The result starts as a deep copy of base. Recognized fields in input
// override it, append-variant fields concatenate onto it, and matching
// regex/filter/else branches are queued and then recursively merged in
// order, so later branches override earlier ones. A nil input returns
// base unchanged; a spec with no matching branch resolves to the base
// result, which is not an error.
func mergeSpec(input, base *Spec, tgt target) (*Spec, error) {
	if input == nil {
		return base, nil
	}
	result := base.Clone()

	var queued []*Spec
	var appends []struct {
		field string
		value any
	}
	var elseSpec *Spec
	regexMatched := false

	for _, key := range input.Keys() {
		value, _ := input.Get(key)
		switch {
		case key == elseKey:
			sub, err := branchSpec(key, value)
			if err != nil {
				return nil, err
			}
			elseSpec = sub

		case appendFields[key] != "":
			if value == nil {
				continue
			}
			appends = append(appends, struct {
				field string
				value any
			}{appendFields[key], value})

		case entryFields[key]:
			// Only default_value keeps an explicit nil; for every other
			// field nil means "absent", so the base value survives.
			if value == nil && key != FieldDefaultValue {
				continue
			}
			result.Set(key, cloneValue(value))

		case isRegexKey(key):
			pattern := key[1 : len(key)-1]
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, cnuerrors.Wrapf(cnuerrors.ErrCodeLoad, err,
					"bad product-id pattern %q", key)
			}
			if !re.MatchString(tgt.productID) {
				continue
			}
			regexMatched = true
			sub, err := branchSpec(key, value)
			if err != nil {
				return nil, err
			}
			if sub != nil {
				queued = append(queued, sub)
			}

		default:
			f, ok := platformFilters[key]
			if !ok {
				return nil, cnuerrors.Newf(cnuerrors.ErrCodeLoad,
					"unrecognized key %q", key)
			}
			if f.cliOnly && !tgt.cli {
				continue
			}
			if f.platform != "" && f.platform != tgt.platform {
				continue
			}
			sub, err := branchSpec(key, value)
			if err != nil {
				return nil, err
			}
			if sub != nil {
				queued = append(queued, sub)
			}
		}
	}

	// Append fields land after every directly-set field from this pass,
	// regardless of the order the document listed them in.
	for _, a := range appends {
		existing, _ := result.Get(a.field)
		result.Set(a.field, append(toSequence(existing), toSequence(cloneValue(a.value))...))
	}

	if !regexMatched && elseSpec != nil {
		queued = append(queued, elseSpec)
	}

	var err error
	for _, sub := range queued {
		result, err = mergeSpec(sub, result, tgt)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// branchSpec coerces the value under a regex/filter/else key into a
// Spec. A nil value is treated as an absent branch.
func branchSpec(key string, value any) (*Spec, error) {
	if value == nil {
		return nil, nil
	}
	sub, ok := value.(*Spec)
	if !ok {
		return nil, cnuerrors.Newf(cnuerrors.ErrCodeLoad,
			"key %q must hold a mapping", key)
	}
	return sub, nil
}

// toSequence promotes a scalar to a single-element sequence. Nil maps to
// an empty sequence so append fields can land on an absent base field.
func toSequence(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{v}
	}
}
