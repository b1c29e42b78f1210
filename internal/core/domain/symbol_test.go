package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "AAPL", NormalizeSymbol(" aapl "))
	assert.Equal(t, "BRK.B", NormalizeSymbol("brk.b"))
	assert.Equal(t, "BTC-USD", NormalizeSymbol("btc-usd"))
}

func TestValidSymbol(t *testing.T) {
	valid := []string{"AAPL", "shop", "BRK.B", "btc-usd", "7203", " xeqt "}
	for _, s := range valid {
		assert.True(t, ValidSymbol(s), s)
	}

	invalid := []string{"", "not a ticker", "TOOLONGSYMBOL", "AAPL..B", ".AAPL", "AAPL-"}
	for _, s := range invalid {
		assert.False(t, ValidSymbol(s), s)
	}
}
