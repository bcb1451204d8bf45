package appsettings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfer_OrderAndKinds(t *testing.T) {
	cases := []struct {
		raw  string
		kind ValueKind
		json string
	}{
		{"true", KindBool, `true`},
		{"False", KindBool, `false`},
		{" TRUE ", KindBool, `true`},
		{"42", KindInt, `42`},
		{"1", KindInt, `1`},
		{"0", KindInt, `0`},
		{"01", KindInt, `1`},
		{"-7", KindInt, `-7`},
		{"+5", KindInt, `5`},
		{"3.14", KindFloat, `3.14`},
		{"-0.5", KindFloat, `-0.5`},
		{"1e3", KindFloat, `1000`},
		{"99999999999999999999", KindFloat, `100000000000000000000`},
		{"hello", KindString, `"hello"`},
		{"", KindString, `""`},
		{"t", KindString, `"t"`},
		{"yes", KindString, `"yes"`},
		{"NaN", KindString, `"NaN"`},
		{"Infinity", KindString, `"Infinity"`},
		{"0x10", KindString, `"0x10"`},
		{"1_000", KindString, `"1_000"`},
		{"1e400", KindString, `"1e400"`},
		{"a<b&c", KindString, `"a<b&c"`},
		{" padded ", KindString, `" padded "`},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			v := Infer(tc.raw)
			assert.Equal(t, tc.kind, v.Kind)
			assert.Equal(t, tc.raw, v.Raw)
			b, err := v.JSON()
			require.NoError(t, err)
			assert.Equal(t, tc.json, string(b))
		})
	}
}

func TestValue_Any(t *testing.T) {
	assert.Equal(t, true, Infer("true").Any())
	assert.Equal(t, int64(42), Infer("42").Any())
	assert.Equal(t, 3.14, Infer("3.14").Any())
	assert.Equal(t, "x", Infer("x").Any())
}

func TestValueKind_String(t *testing.T) {
	assert.Equal(t, "bool", KindBool.String())
	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "float", KindFloat.String())
	assert.Equal(t, "string", KindString.String())
}
