package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHex(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x02}, FromHex("0x0102"))
	assert.Equal(t, []byte{0x01}, FromHex("1"))
	assert.Equal(t, []byte{0xab}, FromHex("0Xab"))
}

func TestDecodeHex(t *testing.T) {
	b, err := DecodeHex("0x6002")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x02}, b)

	_, err = DecodeHex("zz")
	assert.Error(t, err)
}

func TestPadBytes(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 1}, LeftPadBytes([]byte{1}, 3))
	assert.Equal(t, []byte{1, 0, 0}, RightPadBytes([]byte{1}, 3))
	assert.Equal(t, []byte{1, 2}, LeftPadBytes([]byte{1, 2}, 1))
}

func TestAddressText(t *testing.T) {
	var a Address
	require.NoError(t, a.UnmarshalText([]byte("0xADDDECAFADDDECAFADDDECAFADDDECAF")))
	assert.Equal(t, "0x00000000adddecafadddecafadddecafadddecaf", a.Hex())

	out, err := a.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, a.Hex(), string(out))

	assert.Error(t, a.UnmarshalText([]byte("0x0011223344556677889900112233445566778899aa")))
	assert.Error(t, a.UnmarshalText([]byte("nothex")))
}
