package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$49", FormatPrice(4900, "usd"))
	assert.Equal(t, "$15.99", FormatPrice(1599, "USD"))
	assert.Equal(t, "€0", FormatPrice(0, "eur"))
	assert.Equal(t, "CHF 12.50", FormatPrice(1250, "chf"))
}

func TestFormatInterval(t *testing.T) {
	assert.Equal(t, "", FormatInterval(""))
	assert.Equal(t, "/mo", FormatInterval("month"))
	assert.Equal(t, "/yr", FormatInterval("year"))
	assert.Equal(t, "/quarter", FormatInterval("quarter"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mar 4, 2025", FormatDate(time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", FormatDate(time.Time{}))
}
