package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const interSample = `Banco Inter
Fatura de novembro

Cartão final 1234
DATA DESCRIÇÃO VALOR
03 de nov. 2024 MERCADOLIVRE - R$ 150,00
05 de nov. 2024 UBER TRIP .SAO PAULO - R$ 23,90
07 de nov. 2024 PAGAMENTO RECEBIDO - + R$ 1.200,00

Cartão final 5678
10 de nov. 2024 LOJA X PARC 03/10 - R$ 89,90
`

func TestInterParserExtract(t *testing.T) {
	p := NewInterParser()
	ext, err := p.Extract(interSample, "fatura_nov.pdf")
	require.NoError(t, err)
	require.Len(t, ext.Matches, 4)

	first := ext.Matches[0]
	assert.Equal(t, "03 de nov. 2024", first.DateText)
	assert.Equal(t, "MERCADOLIVRE", first.Description)
	assert.Equal(t, "150,00", first.AmountText)
	assert.False(t, first.CreditMark)
	assert.Equal(t, "1234", first.CardNumber)

	credit := ext.Matches[2]
	assert.True(t, credit.CreditMark)
	assert.Equal(t, "PAGAMENTO RECEBIDO", credit.Description)
	assert.Equal(t, "1.200,00", credit.AmountText)

	// card-context switches at the second boundary header
	last := ext.Matches[3]
	assert.Equal(t, "5678", last.CardNumber)
	assert.Equal(t, "LOJA X PARC 03/10", last.Description)
}

func TestInterParserNoBoundary(t *testing.T) {
	text := "03 de nov. 2024 MERCADOLIVRE - R$ 150,00\n"
	ext, err := NewInterParser().Extract(text, "stmt.pdf")
	require.NoError(t, err)
	require.Len(t, ext.Matches, 1)
	// absent boundary yields an absent card, never a failure
	assert.Empty(t, ext.Matches[0].CardNumber)
}

func TestInterParserSkipsHeaders(t *testing.T) {
	text := `Cartão final 1234
03 de nov. 2024 DATA VALOR TOTAL - R$ 10,00
`
	ext, err := NewInterParser().Extract(text, "stmt.pdf")
	require.NoError(t, err)
	assert.Empty(t, ext.Matches)
}

func TestInterParserUnrecognizedText(t *testing.T) {
	ext, err := NewInterParser().Extract("nothing statement-like here\nat all\n", "stmt.pdf")
	require.NoError(t, err)
	assert.Empty(t, ext.Matches)
}
