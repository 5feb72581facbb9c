package linecode

import (
	"testing"

	"BERSim/pkg/modem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncode(t *testing.T) {
	coded, err := Manchester{}.Encode(modem.Bits{0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, "100101", coded.String())
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := modem.Bits(rapid.SliceOf(rapid.Uint8Range(0, 1)).Draw(t, "bits"))
		m := Manchester{}

		coded, err := m.Encode(in)
		require.NoError(t, err)
		require.Len(t, coded, 2*len(in))
		for i := 0; i < len(coded); i += 2 {
			require.NotEqual(t, coded[i], coded[i+1], "pair %d has no transition", i/2)
		}

		out, err := m.Decode(coded)
		require.NoError(t, err)
		require.Equal(t, in.String(), out.String())
	})
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		coded modem.Bits
		want  string
	}{
		{"valid", modem.Bits{1, 0, 0, 1}, "01"},
		{"no transition", modem.Bits{0, 0, 1, 1}, "01"},
		{"empty", modem.Bits{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Manchester{}.Decode(tt.coded)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Manchester{}.Decode(modem.Bits{1, 0, 1})
	assert.ErrorIs(t, err, modem.ErrInvalidLength)

	_, err = Manchester{}.Decode(modem.Bits{1, 5})
	assert.ErrorIs(t, err, modem.ErrInvalidBitVector)

	_, err = Manchester{}.Encode(modem.Bits{2})
	assert.ErrorIs(t, err, modem.ErrInvalidBitVector)
}
