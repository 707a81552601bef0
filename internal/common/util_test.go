package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	for _, n := range []int{0, 1, 16, 32} {
		s, err := MakeRandHexString(n)
		require.NoError(t, err)
		require.Len(t, s, n*2)

		_, err = hex.DecodeString(s)
		require.NoError(t, err, "not valid hex: %q", s)
	}
}

func TestGenerateRandByteArray_Length(t *testing.T) {
	a := GenerateRandByteArray(24)
	b := GenerateRandByteArray(24)
	require.Len(t, a, 24)
	require.Len(t, b, 24)
	if string(a) == string(b) {
		t.Logf("warning: two random arrays are identical; extremely unlikely")
	}
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	require.Equal(t, []byte{0, 0, 0, 0, 0}, buf)

	require.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestSessionKeys_CoverCanonicalAndLegacySlots(t *testing.T) {
	require.ElementsMatch(t,
		[]string{AccessTokenKey, ProfileKey, LegacyTokenKey, LegacyUserKey},
		SessionKeys,
	)
}
