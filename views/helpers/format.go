package helpers

import (
	"fmt"
	"strings"
	"time"
)

var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"cad": "CA$",
}

// FormatPrice formats minor units in the given ISO currency
// (e.g., 4900, "usd" -> "$49"; 1599, "usd" -> "$15.99").
func FormatPrice(cents int64, currency string) string {
	symbol, ok := currencySymbols[strings.ToLower(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}
	if cents%100 == 0 {
		return fmt.Sprintf("%s%d", symbol, cents/100)
	}
	return fmt.Sprintf("%s%.2f", symbol, float64(cents)/100)
}

// FormatInterval renders a billing interval as a price suffix ("month" -> "/mo").
func FormatInterval(interval string) string {
	switch interval {
	case "":
		return ""
	case "month":
		return "/mo"
	case "year":
		return "/yr"
	case "week":
		return "/wk"
	case "day":
		return "/day"
	default:
		return "/" + interval
	}
}

// FormatDate formats a time.Time as "Jan 2, 2006"
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
