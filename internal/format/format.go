// internal/format/format.go
//
// Presentation helpers shared by the TUI and the PDF export: Brazilian date
// rendering with fixed fallback strings, value fallbacks and the CPF / CEP /
// phone input masks. Formatting never fails; bad input renders a fallback.

package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	// NaoInformado is rendered for absent values.
	NaoInformado = "Não informado"
	// DataInvalida is rendered for unparsable dates.
	DataInvalida = "Data inválida"
)

var meses = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// dateLayouts covers the shapes the backend has produced for timestamps.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseData(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Data renders a backend date as dd/mm/yyyy. Empty input renders
// "Não informado", unparsable input renders "Data inválida".
func Data(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return NaoInformado
	}
	t, ok := parseData(raw)
	if !ok {
		return DataInvalida
	}
	return t.Format("02/01/2006")
}

// DataCompleta renders a backend date in long form, e.g.
// "10 de março de 2025". Fallbacks match Data.
func DataCompleta(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return NaoInformado
	}
	t, ok := parseData(raw)
	if !ok {
		return DataInvalida
	}
	return fmt.Sprintf("%02d de %s de %d", t.Day(), meses[t.Month()-1], t.Year())
}

// Valor returns the value or "Não informado" when blank.
func Valor(v string) string {
	return ValorOu(v, NaoInformado)
}

// ValorOu returns the value or the given fallback when blank.
func ValorOu(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// SomenteDigitos strips everything but digits, the form the backend expects
// for CPF and CEP fields.
func SomenteDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digits(s string) string { return SomenteDigitos(s) }

// CPF masks a CPF as 000.000.000-00. Input with anything other than eleven
// digits is returned unchanged.
func CPF(raw string) string {
	d := digits(raw)
	if len(d) != 11 {
		return raw
	}
	return fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:11])
}

// CEP masks a postal code as 00000-000. Input with anything other than
// eight digits is returned unchanged.
func CEP(raw string) string {
	d := digits(raw)
	if len(d) != 8 {
		return raw
	}
	return d[0:5] + "-" + d[5:8]
}

// Telefone masks a phone number as (00) 0000-0000 or (00) 00000-0000.
// Other digit counts are returned unchanged.
func Telefone(raw string) string {
	d := digits(raw)
	switch len(d) {
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[0:2], d[2:6], d[6:10])
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[0:2], d[2:7], d[7:11])
	default:
		return raw
	}
}
