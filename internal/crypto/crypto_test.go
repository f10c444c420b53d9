package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 32)

	sealed, err := Seal("the quick brown fox", key)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "quick")

	plain, err := Open(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, "the quick brown fox", plain)
}

func TestSeal_UniqueNonces(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 32)

	first, err := Seal("same input", key)
	require.NoError(t, err)
	second, err := Seal("same input", key)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestOpen_WrongKey(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 32)
	sealed, err := Seal("secret", key)
	require.NoError(t, err)

	_, err = Open(sealed, bytes.Repeat([]byte{0x02}, 32))
	assert.Error(t, err)
}

func TestOpen_GarbageInput(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 32)

	_, err := Open("not base64 at all!!!", key)
	assert.Error(t, err)

	_, err = Open("c2hvcnQ=", key) // valid base64, too short for a nonce
	assert.Error(t, err)
}

func TestKeyLengthValidation(t *testing.T) {
	_, err := Seal("data", []byte("short"))
	assert.Error(t, err)

	_, err = Open("data", []byte("short"))
	assert.Error(t, err)
}
