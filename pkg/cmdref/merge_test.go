package cmdref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	cnuerrors "github.com/1mrobas/cisco-network-node-utils/pkg/errors"
)

// mustSpec parses a YAML snippet into an ordered Spec.
func mustSpec(t *testing.T, doc string) *Spec {
	t.Helper()
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(doc), &root))
	require.NotEmpty(t, root.Content, "snippet must not be empty")
	spec, err := specFromNode(root.Content[0])
	require.NoError(t, err)
	return spec
}

// plain converts a Spec tree to ordinary maps for comparison.
func plain(v any) any {
	switch t := v.(type) {
	case *Spec:
		out := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			raw, _ := t.Get(k)
			out[k] = plain(raw)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

var nexusCLI = target{productID: "N9K-C9396PX", platform: "nexus", cli: true}

func TestMergeSpec_NilInputReturnsBase(t *testing.T) {
	base := mustSpec(t, "config_get: 'show run'")
	result, err := mergeSpec(nil, base, nexusCLI)
	require.NoError(t, err)
	assert.Same(t, base, result)
}

func TestMergeSpec_FieldsOverrideBase(t *testing.T) {
	base := mustSpec(t, `
config_get: 'show run'
default_value: false
`)
	input := mustSpec(t, "default_value: true")

	result, err := mergeSpec(input, base, nexusCLI)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"config_get":    "show run",
		"default_value": true,
	}, plain(result))
}

func TestMergeSpec_IdempotentRemerge(t *testing.T) {
	spec := mustSpec(t, `
config_get: 'show run tacacs all'
config_get_token: '/^tacacs-server timeout\s+(\d+)/'
config_set: '%s tacacs-server timeout %d'
default_value: 5
`)
	once, err := mergeSpec(spec, nil, nexusCLI)
	require.NoError(t, err)
	twice, err := mergeSpec(spec, once, nexusCLI)
	require.NoError(t, err)
	assert.Equal(t, plain(once), plain(twice))
}

func TestMergeSpec_AppendConcatenatesAfterDirectSet(t *testing.T) {
	// The append variant lands after the directly-set value even when
	// the document lists the append key first.
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "append first",
			doc: `
config_set_append: 'extra line'
config_set: 'base line'
`,
		},
		{
			name: "append last",
			doc: `
config_set: 'base line'
config_set_append: 'extra line'
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := mergeSpec(mustSpec(t, tt.doc), nil, nexusCLI)
			require.NoError(t, err)
			v, ok := result.Get(FieldConfigSet)
			require.True(t, ok)
			assert.Equal(t, []any{"base line", "extra line"}, v)
		})
	}
}

func TestMergeSpec_AppendOntoBaseSpec(t *testing.T) {
	base := mustSpec(t, `
config_set:
  - 'router bgp <asnum>'
  - 'address-family <afi> <safi>'
`)
	input := mustSpec(t, "config_set_append: '<state> client-to-client reflection'")

	result, err := mergeSpec(input, base, nexusCLI)
	require.NoError(t, err)
	v, _ := result.Get(FieldConfigSet)
	assert.Equal(t, []any{
		"router bgp <asnum>",
		"address-family <afi> <safi>",
		"<state> client-to-client reflection",
	}, v)
}

func TestMergeSpec_RegexBranchSuppressesElse(t *testing.T) {
	spec := mustSpec(t, `
/^N3K/:
  config_set: 'n3k command'
else:
  config_set: 'generic command'
`)

	matched, err := mergeSpec(spec, nil, target{productID: "N3K-C3064PQ", platform: "nexus", cli: true})
	require.NoError(t, err)
	v, _ := matched.Get(FieldConfigSet)
	assert.Equal(t, "n3k command", v, "matching product must use the regex branch only")

	unmatched, err := mergeSpec(spec, nil, target{productID: "N7K-C7010", platform: "nexus", cli: true})
	require.NoError(t, err)
	v, _ = unmatched.Get(FieldConfigSet)
	assert.Equal(t, "generic command", v, "non-matching product must fall back to else")
}

func TestMergeSpec_NonMatchingRegexNotRecursed(t *testing.T) {
	// An unrecognized key inside a skipped branch must not be reached.
	spec := mustSpec(t, `
/^N3K/:
  bogus_key: true
config_get: 'show run'
`)
	result, err := mergeSpec(spec, nil, target{productID: "N9K-C9396PX"})
	require.NoError(t, err)
	v, _ := result.Get(FieldConfigGet)
	assert.Equal(t, "show run", v)
}

func TestMergeSpec_PlatformAndCLIFilters(t *testing.T) {
	spec := mustSpec(t, `
cli_nexus:
  config_set: 'nexus cli command'
default_value: false
`)
	tests := []struct {
		name    string
		tgt     target
		wantSet bool
	}{
		{"cli on matching platform", target{platform: "nexus", cli: true}, true},
		{"api mode", target{platform: "nexus", cli: false}, false},
		{"other platform", target{platform: "ios_xr", cli: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := mergeSpec(spec, nil, tt.tgt)
			require.NoError(t, err)
			_, ok := result.Get(FieldConfigSet)
			assert.Equal(t, tt.wantSet, ok)
			v, ok := result.Get(FieldDefaultValue)
			require.True(t, ok, "unfiltered fields always merge")
			assert.Equal(t, false, v)
		})
	}
}

func TestMergeSpec_NoMatchYieldsBase(t *testing.T) {
	base := mustSpec(t, "config_get: 'show run'")
	input := mustSpec(t, `
/^XRV9/:
  config_set: 'xr only'
`)
	result, err := mergeSpec(input, base, nexusCLI)
	require.NoError(t, err)
	assert.Equal(t, plain(base), plain(result))
}

func TestMergeSpec_ExplicitNilDefaultValue(t *testing.T) {
	base := mustSpec(t, `
config_get: 'show run'
default_value: false
`)
	input := mustSpec(t, `
config_get: ~
default_value: ~
`)
	result, err := mergeSpec(input, base, nexusCLI)
	require.NoError(t, err)

	// default_value honors the explicit nil override.
	v, ok := result.Get(FieldDefaultValue)
	require.True(t, ok)
	assert.Nil(t, v)

	// Any other nil field is treated as absent; the base value survives.
	v, ok = result.Get(FieldConfigGet)
	require.True(t, ok)
	assert.Equal(t, "show run", v)
}

func TestMergeSpec_UnrecognizedKey(t *testing.T) {
	_, err := mergeSpec(mustSpec(t, "not_a_field: true"), nil, nexusCLI)
	require.Error(t, err)
	assert.True(t, cnuerrors.IsCode(err, cnuerrors.ErrCodeLoad))
	assert.Contains(t, err.Error(), `unrecognized key "not_a_field"`)
}

func TestMergeSpec_BadProductPattern(t *testing.T) {
	_, err := mergeSpec(mustSpec(t, `
/([/:
  default_value: 1
`), nil, nexusCLI)
	require.Error(t, err)
	assert.True(t, cnuerrors.IsCode(err, cnuerrors.ErrCodeLoad))
}

func TestMergeSpec_LaterBranchOverridesEarlier(t *testing.T) {
	spec := mustSpec(t, `
/^N9K/:
  default_value: 8
nexus:
  default_value: 4
`)
	result, err := mergeSpec(spec, nil, nexusCLI)
	require.NoError(t, err)
	v, _ := result.Get(FieldDefaultValue)
	assert.Equal(t, int64(4), v, "branches merge in queue order, later wins")
}
