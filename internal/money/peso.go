// Package money renders amounts the way the rider app shows them.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const pesoSign = "₱"

var printer = message.NewPrinter(language.MustParse("en-PH"))

// Peso formats an amount as Philippine pesos with two decimals and en-PH grouping,
// e.g. 1234.5 -> "₱1,234.50".
func Peso(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	// cents are rounded half away from zero before printing
	cents := math.Round(amount * 100)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + pesoSign + printer.Sprint(number.Decimal(cents/100, number.Scale(2)))
}

// Round2 rounds an amount to whole cents.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
