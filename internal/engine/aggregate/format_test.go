package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatUptime(t *testing.T) {
	tests := map[int64]string{
		0:      "0h 0m",
		59:     "0h 0m",
		3600:   "1h 0m",
		90000:  "1d 1h 0m",
		685412: "7d 22h 23m",
		-5:     "0h 0m",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatUptime(in), in)
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$68.42", FormatCurrency(decimal.RequireFromString("68.42")))
	assert.Equal(t, "$0.00001240", FormatCurrency(decimal.RequireFromString("0.0000124")))
	assert.Equal(t, "$0.01", FormatCurrency(decimal.RequireFromString("0.01")))
	assert.Equal(t, "$2.14", FormatCurrency(decimal.RequireFromString("2.14")))
}

func TestFormatVolume(t *testing.T) {
	assert.Equal(t, "$1254.90M", FormatVolume(decimal.NewFromInt(1254897654)))
	assert.Equal(t, "$89.65M", FormatVolume(decimal.NewFromInt(89654123)))
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "2.3%", FormatChange(decimal.RequireFromString("-2.3")))
	assert.Equal(t, "5.2%", FormatChange(decimal.RequireFromString("5.2")))
	assert.Equal(t, "0.8%", FormatChange(decimal.RequireFromString("0.8")))
}
