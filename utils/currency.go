package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrencyBRL formata um valor decimal no padrao brasileiro.
// Exemplo: 15000.50 -> "R$ 15.000,50"
func FormatCurrencyBRL(valor decimal.Decimal) string {
	fixed := valor.StringFixed(2)

	negativo := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.Split(fixed, ".")
	inteiro := parts[0]
	centavos := parts[1]

	// Separador de milhar
	var grupos []string
	for i := len(inteiro); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		grupos = append([]string{inteiro[start:i]}, grupos...)
	}

	out := "R$ " + strings.Join(grupos, ".") + "," + centavos
	if negativo {
		out = "-" + out
	}
	return out
}
