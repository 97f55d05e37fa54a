package cmdref

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnuerrors "github.com/1mrobas/cisco-network-node-utils/pkg/errors"
)

// mustEntry resolves a YAML attribute spec into an Entry for the nexus
// CLI target.
func mustEntry(t *testing.T, doc string) *Entry {
	t.Helper()
	resolved, err := mergeSpec(mustSpec(t, doc), nil, nexusCLI)
	require.NoError(t, err)
	entry, err := newEntry("test_feature", "test_attr", resolved, "test_feature.yaml")
	require.NoError(t, err)
	return entry
}

func TestEntry_NamedTemplateDropsUnresolvedLines(t *testing.T) {
	entry := mustEntry(t, `
config_set: '<state> tacacs-server host <ip> key <enc_type> <password>'
`)

	// Only ip supplied: the single line still carries unresolved tokens
	// and is dropped, leaving an empty sequence.
	lines, err := entry.ConfigSet(map[string]any{"ip": "10.1.1.1"})
	require.NoError(t, err)
	assert.Empty(t, lines)

	// All tokens supplied: the line renders.
	lines, err = entry.ConfigSet(map[string]any{
		"state":    "no",
		"ip":       "10.1.1.1",
		"enc_type": 7,
		"password": "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"no tacacs-server host 10.1.1.1 key 7 secret"}, lines)
}

func TestEntry_NamedTemplateLinesIndependentlyOptional(t *testing.T) {
	entry := mustEntry(t, `
config_set:
  - 'router bgp <asnum>'
  - 'vrf <vrf>'
  - 'address-family <afi> <safi>'
`)
	lines, err := entry.ConfigSet(map[string]any{"asnum": 65000, "afi": "ipv4", "safi": "unicast"})
	require.NoError(t, err)
	assert.Equal(t, []string{"router bgp 65000", "address-family ipv4 unicast"}, lines,
		"the vrf line is dropped, the others render")
}

func TestEntry_PositionalTemplateArgCount(t *testing.T) {
	entry := mustEntry(t, `
config_set: '%s tacacs-server timeout %d'
`)

	for _, args := range [][]any{nil, {"no"}, {"no", 5, "extra"}} {
		_, err := entry.ConfigSet(args...)
		require.Error(t, err, "args=%v", args)
		assert.True(t, cnuerrors.IsCode(err, cnuerrors.ErrCodeBadArguments))
	}

	lines, err := entry.ConfigSet("no", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"no tacacs-server timeout 5"}, lines)
}

func TestEntry_PositionalArgsConsumedAcrossLines(t *testing.T) {
	entry := mustEntry(t, `
config_set:
  - 'interface %s'
  - 'speed %d duplex %s'
`)
	f, err := entry.Field(FieldConfigSet)
	require.NoError(t, err)
	assert.Equal(t, FieldPositionalTemplate, f.Kind())
	assert.Equal(t, 3, f.ArgCount())

	lines, err := entry.ConfigSet("Ethernet1/1", 1000, "full")
	require.NoError(t, err)
	assert.Equal(t, []string{"interface Ethernet1/1", "speed 1000 duplex full"}, lines)
}

func TestEntry_LiteralPercentIsNotAMarker(t *testing.T) {
	entry := mustEntry(t, `
config_set: 'load-interval counter %d threshold 50%%'
`)
	lines, err := entry.ConfigSet(30)
	require.NoError(t, err)
	assert.Equal(t, []string{"load-interval counter 30 threshold 50%"}, lines)
}

func TestEntry_RegexConversion(t *testing.T) {
	entry := mustEntry(t, `
config_get_token: '/^tacacs-server host (\S+)/'
test_config_get_regex: '/foo/i'
`)

	tokens, err := entry.ConfigGetToken()
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	re, ok := tokens[0].(*regexp.Regexp)
	require.True(t, ok, "token must compile to a regexp, got %T", tokens[0])
	assert.True(t, re.MatchString("tacacs-server host 10.1.1.1"))
	assert.False(t, re.MatchString("TACACS-SERVER HOST 10.1.1.1"), "pattern is case-sensitive")

	v, err := entry.Value(FieldTestConfigGetRegex)
	require.NoError(t, err)
	ire, ok := v.(*regexp.Regexp)
	require.True(t, ok)
	assert.True(t, ire.MatchString("FOO"), "/…/i compiles case-insensitive")
	assert.True(t, ire.MatchString("foo"))
}

func TestEntry_NamedTokenCompilesAfterSubstitution(t *testing.T) {
	entry := mustEntry(t, `
config_get_token: '/^tacacs-server host <ip> timeout (\d+)/'
`)
	tokens, err := entry.ConfigGetToken(map[string]any{"ip": "10.1.1.1"})
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	re, ok := tokens[0].(*regexp.Regexp)
	require.True(t, ok)
	assert.True(t, re.MatchString("tacacs-server host 10.1.1.1 timeout 30"))
}

func TestEntry_StaticSequenceIgnoresArguments(t *testing.T) {
	entry := mustEntry(t, `
config_set:
  - 'feature bfd'
  - 'bfd interval 50 min_rx 50 multiplier 3'
`)
	want := []string{"feature bfd", "bfd interval 50 min_rx 50 multiplier 3"}

	lines, err := entry.ConfigSet()
	require.NoError(t, err)
	assert.Equal(t, want, lines)

	lines, err = entry.ConfigSet("ignored", 42)
	require.NoError(t, err)
	assert.Equal(t, want, lines)
}

func TestEntry_FieldNotDefined(t *testing.T) {
	entry := mustEntry(t, "config_get: 'show run'")

	_, err := entry.Value(FieldConfigSet)
	require.Error(t, err)
	assert.True(t, cnuerrors.IsCode(err, cnuerrors.ErrCodeFieldUndefined))
	assert.Contains(t, err.Error(), `"test_feature"`)
	assert.Contains(t, err.Error(), `"test_attr"`)
}

func TestEntry_HasField(t *testing.T) {
	entry := mustEntry(t, `
config_get: 'show run'
default_value: ~
`)
	assert.True(t, entry.HasField(FieldConfigGet))
	assert.False(t, entry.HasField(FieldConfigSet), "absent field")
	assert.False(t, entry.HasField(FieldDefaultValue), "explicitly nil field")

	// The explicit nil is still retrievable without error.
	v, err := entry.DefaultValue()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestEntry_TestConfigResult(t *testing.T) {
	entry := mustEntry(t, `
test_config_result:
  'false': ~
  'true': RuntimeError
`)

	resolve := map[string]any{"RuntimeError": errRuntime}

	v, err := entry.TestConfigResult(true, resolve)
	require.NoError(t, err)
	assert.Equal(t, errRuntime, v)

	v, err = entry.TestConfigResult(false, resolve)
	require.NoError(t, err)
	assert.Nil(t, v)

	// Without a resolver the raw identifier comes back.
	v, err = entry.TestConfigResult(true, nil)
	require.NoError(t, err)
	assert.Equal(t, "RuntimeError", v)

	_, err = entry.TestConfigResult("unknown", resolve)
	require.Error(t, err)
	assert.True(t, cnuerrors.IsCode(err, cnuerrors.ErrCodeFieldUndefined))
}

var errRuntime = assert.AnError

func TestEntry_String(t *testing.T) {
	entry := mustEntry(t, `
config_get: 'show run'
config_set: '<state> feature bgp'
`)
	s := entry.String()
	assert.Contains(t, s, "test_feature.test_attr")
	assert.Contains(t, s, "config_get (static)")
	assert.Contains(t, s, "config_set (named template (1 lines))")
}
