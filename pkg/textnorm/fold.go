// Package textnorm normaliza texto para búsquedas: minúsculas y sin tildes,
// de modo que "perez" encuentre a "Pérez" y "munoz" a "Muñoz".
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Spanish)

// Fold devuelve s en minúsculas, sin marcas diacríticas y sin espacios sobrantes.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(lower.String(out)), " ")
}

// SearchKey concatena los campos ya normalizados, separados por un espacio.
func SearchKey(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = Fold(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
