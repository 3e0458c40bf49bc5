package numbering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/superindo-api/internal/domain/numbering"
)

var day = time.Date(2025, 7, 21, 15, 4, 5, 0, time.UTC)

func TestFormat(t *testing.T) {
	got, err := numbering.Format(numbering.PrefixIncoming, day, 1)
	require.NoError(t, err)
	assert.Equal(t, "IN202507210001", got)

	got, err = numbering.Format(numbering.PrefixInvoice, day, 42)
	require.NoError(t, err)
	assert.Equal(t, "INV202507210042", got)

	_, err = numbering.Format(numbering.PrefixProduction, day, numbering.MaxSequence+1)
	assert.ErrorIs(t, err, numbering.ErrSequenceExhausted)
}

func TestNextFromLast(t *testing.T) {
	cases := []struct {
		name, last, prefix, want string
	}{
		{"sin previos", "", numbering.PrefixIncoming, "IN202507210001"},
		{"consecutivo", "IN202507210001", numbering.PrefixIncoming, "IN202507210002"},
		{"salta huecos desde el último", "PR202507210017", numbering.PrefixProduction, "PR202507210018"},
		{"último de otro día", "IN202507200099", numbering.PrefixIncoming, "IN202507210001"},
		{"sufijo inválido", "IN20250721ABCD", numbering.PrefixIncoming, "IN202507210001"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := numbering.NextFromLast(tc.last, tc.prefix, day)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextFromLast_Agotado(t *testing.T) {
	_, err := numbering.NextFromLast("INV202507219999", numbering.PrefixInvoice, day)
	assert.ErrorIs(t, err, numbering.ErrSequenceExhausted)
}

func TestParseSequence_PrefijoDistinto(t *testing.T) {
	// "IN" es prefijo de "INV": un número de factura no debe contarse como entrada.
	_, ok := numbering.ParseSequence("INV202507210005", numbering.PrefixIncoming, day)
	assert.False(t, ok)

	seq, ok := numbering.ParseSequence("INV202507210005", numbering.PrefixInvoice, day)
	assert.True(t, ok)
	assert.Equal(t, 5, seq)
}

func TestSplit(t *testing.T) {
	cases := []struct {
		name, number, prefix, day string
		seq                       int
		ok                        bool
	}{
		{"entrada", "IN202507210002", numbering.PrefixIncoming, "20250721", 2, true},
		{"factura de otro día", "INV202507189999", numbering.PrefixInvoice, "20250718", 9999, true},
		{"factura no es entrada", "INV202507210005", numbering.PrefixIncoming, "", 0, false},
		{"número libre", "IN-LEGACY-1", numbering.PrefixIncoming, "", 0, false},
		{"fecha inválida", "IN202513400001", numbering.PrefixIncoming, "", 0, false},
		{"secuencia no numérica", "IN20250721ABCD", numbering.PrefixIncoming, "", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, seq, ok := numbering.Split(tc.number, tc.prefix)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.day, d)
			assert.Equal(t, tc.seq, seq)
		})
	}
}
