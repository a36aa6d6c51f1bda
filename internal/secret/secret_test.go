package secret

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	key, err := Generate(DefaultLength)
	require.NoError(t, err)
	assert.Len(t, key, DefaultLength)
	for _, c := range key {
		assert.True(t, strings.ContainsRune(Charset, c), "unexpected character %q", c)
	}

	other, err := Generate(DefaultLength)
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestGenerate_Length(t *testing.T) {
	for _, n := range []int{0, -1, MaxLength + 1} {
		_, err := Generate(n)
		assert.Error(t, err, "length %d", n)
	}

	key, err := Generate(MaxLength)
	require.NoError(t, err)
	assert.Len(t, key, MaxLength)
}

func TestGenerateFrom_ShortReader(t *testing.T) {
	_, err := GenerateFrom(bytes.NewReader(nil), 8)
	assert.Error(t, err)
}

func TestCharset_NoQuotesOrLookalikes(t *testing.T) {
	for _, c := range `"'\ IOl01` {
		assert.False(t, strings.ContainsRune(Charset, c), "charset contains %q", c)
	}
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("s3cr3t-Key!")
	assert.Len(t, fp, 16)
	assert.Equal(t, fp, Fingerprint("s3cr3t-Key!"))
	assert.NotEqual(t, fp, Fingerprint("s3cr3t-Key?"))
	assert.NotContains(t, fp, "s3cr3t")
	assert.Empty(t, Fingerprint(""))
}
