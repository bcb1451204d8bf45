package settingsdoc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_LenientAcceptsCommentsAndTrailingCommas(t *testing.T) {
	in := []byte(`{
  // logging
  "Logging": { "Level": "Info", },
  /* block */
  "Retries": 3,
}`)
	doc, err := Parse(in, LenientRead)
	require.NoError(t, err)
	assert.Equal(t, []string{"Logging", "Retries"}, doc.Names())

	v, ok := doc.Get("Logging")
	require.True(t, ok)
	assert.Equal(t, `{"Level":"Info"}`, string(v))
}

func TestParse_StrictRejectsComments(t *testing.T) {
	_, err := Parse([]byte(`{ // c
"a": 1 }`), StrictRead)
	assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
}

func TestParse_StripsBOM(t *testing.T) {
	doc, err := Parse(append([]byte{0xEF, 0xBB, 0xBF}, `{"a":1}`...), StrictRead)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, doc.Names())
}

func TestParse_Failures(t *testing.T) {
	cases := map[string]struct {
		in   string
		want error
	}{
		"garbage":      {`{"a":`, ErrMalformed},
		"empty":        {``, ErrMalformed},
		"array root":   {`[1]`, ErrNotObject},
		"string root":  {`"x"`, ErrNotObject},
		"two objects":  {`{} {}`, ErrMalformed},
		"unquoted key": {`{a:1}`, ErrMalformed},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.in), LenientRead)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestParse_DuplicateKeys(t *testing.T) {
	in := []byte(`{"a":1,"a":2}`)

	doc, err := Parse(in, LenientRead)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a"}, doc.Names())
	require.Len(t, doc.Warnings, 1)
	assert.Equal(t, "duplicate_key", doc.Warnings[0].Code)
	assert.Equal(t, "/a", doc.Warnings[0].Path)

	_, err = Parse(in, ReadFormat{Lenient: true, OnDuplicate: DuplicateError})
	assert.True(t, errors.Is(err, ErrDuplicateKey), "got %v", err)

	doc, err = Parse(in, ReadFormat{Lenient: true})
	require.NoError(t, err)
	assert.Empty(t, doc.Warnings)
}

func TestDocument_HasIgnoresCase(t *testing.T) {
	doc, err := Parse([]byte(`{"ConnectionString":"x"}`), StrictRead)
	require.NoError(t, err)
	assert.True(t, doc.Has("connectionstring"))
	assert.False(t, doc.Has("Connection"))
}

func TestEncode_Canonical(t *testing.T) {
	doc := New()
	doc.Append("Foo", []byte(`true`))
	doc.Append("Bar", []byte(`10`))
	out, err := doc.Encode(CanonicalWrite)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"Foo\": true,\n  \"Bar\": 10\n}\n", string(out))
}

func TestEncode_EmptyAndCompact(t *testing.T) {
	out, err := New().Encode(CanonicalWrite)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(out))

	doc := New()
	doc.Append("a", []byte(`"<b>"`))
	out, err = doc.Encode(WriteFormat{})
	require.NoError(t, err)
	assert.Equal(t, `{"a":"<b>"}`, string(out))
}

func TestEncode_RejectsBadValue(t *testing.T) {
	doc := New()
	doc.Append("a", []byte(`{`))
	_, err := doc.Encode(WriteFormat{})
	assert.Error(t, err)
}

func TestRoundTrip_DropsCommentsKeepsValues(t *testing.T) {
	in := []byte(`{
  // keep me out
  "Nested": {"z": [1, 2, {"q": null}], "a": false},
  "Text": "héllo",
}`)
	doc, err := Parse(in, LenientRead)
	require.NoError(t, err)
	out, err := doc.Encode(CanonicalWrite)
	require.NoError(t, err)

	again, err := Parse(out, StrictRead)
	require.NoError(t, err)
	assert.Equal(t, doc.Props, again.Props)
	assert.NotContains(t, string(out), "keep me out")
}

func TestReadFile_MissingIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), BaseFileName)
	doc, err := ReadFile(context.Background(), path, LenientRead)
	require.NoError(t, err)
	assert.False(t, doc.Exists)
	assert.Equal(t, 0, doc.Len())
}

func TestReadFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadFile(ctx, filepath.Join(t.TempDir(), BaseFileName), LenientRead)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteFile_AtomicAndInPlace(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		dir := t.TempDir()
		path := filepath.Join(dir, BaseFileName)
		require.NoError(t, os.WriteFile(path, []byte(`{"old": 1, "longer": "content that gets truncated"}`), 0o600))

		doc := New()
		doc.Append("new", []byte(`2`))
		require.NoError(t, WriteFile(context.Background(), path, doc, WriteOptions{Format: CanonicalWrite, Atomic: atomic}))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"new\": 2\n}\n", string(got))

		fi, err := os.Stat(path)
		require.NoError(t, err)
		if atomic {
			assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
		}

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temp files left behind")
	}
}
