package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveInstallments(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantDesc    string
		wantIndex   int
		wantCount   int
	}{
		{"parc slash", "LOJA X PARC 03/10", "LOJA X", 3, 10},
		{"parenthesized", "MAGAZINE LUIZA (PARCELA 4 DE 10)", "MAGAZINE LUIZA", 4, 10},
		{"bare parcela de", "CASAS BAHIA PARCELA 2 DE 6", "CASAS BAHIA", 2, 6},
		{"parcela slash", "AMAZON PARCELA 1/3", "AMAZON", 1, 3},
		{"count first", "LOJA Y 5/12 PARCELA", "LOJA Y", 5, 12},
		{"marker mid description", "LOJA Z PARC 02/04 COMPRA", "LOJA Z COMPRA", 2, 4},
		{"no marker", "MERCADOLIVRE", "MERCADOLIVRE", 0, 0},
		{"index above count is not a marker", "LOJA W PARC 12/10", "LOJA W PARC 12/10", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, idx, count := ResolveInstallments(tt.input)
			assert.Equal(t, tt.wantDesc, desc)
			assert.Equal(t, tt.wantIndex, idx)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

// Installment fields are never defaulted: a plain purchase stays (0, 0),
// not (1, 1).
func TestResolveInstallmentsNeverDefaults(t *testing.T) {
	_, idx, count := ResolveInstallments("UBER TRIP")
	assert.Zero(t, idx)
	assert.Zero(t, count)
}
