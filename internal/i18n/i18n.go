// Package i18n provides the translation tables selected by the
// language setting. Unknown or malformed locale tags fall back to the
// closest supported language via the x/text matcher.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// supported lists the locales shipped with the application. The first
// entry is the fallback.
var supported = []language.Tag{
	language.BrazilianPortuguese,
	language.English,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

// Translator resolves message keys for one locale.
type Translator struct {
	tag   language.Tag
	table map[string]string
}

// New creates a translator for the given locale tag. A tag that does
// not parse or has no close match falls back to Brazilian Portuguese.
func New(locale string) *Translator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = supported[0]
	}
	_, index, _ := matcher.Match(tag)
	resolved := supported[index]
	return &Translator{tag: resolved, table: tables[resolved.String()]}
}

// Locale returns the resolved locale tag.
func (t *Translator) Locale() string {
	return t.tag.String()
}

// T resolves a message key. Missing keys fall back to the Portuguese
// table, then to the key itself so gaps are visible instead of silent.
func (t *Translator) T(key string) string {
	if msg, ok := t.table[key]; ok {
		return msg
	}
	if msg, ok := tables[supported[0].String()]; ok {
		if fallback, ok := msg[key]; ok {
			return fallback
		}
	}
	return key
}

// Locales returns the supported locale tags, fallback first.
func Locales() []string {
	out := make([]string, len(supported))
	for i, tag := range supported {
		out[i] = tag.String()
	}
	return out
}

var tables = map[string]map[string]string{
	"pt-BR": {
		"card.type":            "Tipo",
		"card.reward":          "Recompensa",
		"card.difficulty":      "Dificuldade",
		"card.system":          "Sistema",
		"type.combat":          "Combate",
		"type.elite":           "Elite",
		"type.trap":            "Armadilha",
		"type.treasure":        "Tesouro",
		"type.event":           "Evento",
		"generate.no_system":   "Nenhum sistema selecionado. Selecione ao menos um sistema antes de gerar.",
		"generate.empty_pool":  "Nenhum evento corresponde à seleção atual.",
		"import.parse_failure": "Não foi possível ler o arquivo. Nenhum evento foi importado.",
		"export.failure":       "Falha ao exportar a carta.",
	},
	"en": {
		"card.type":            "Type",
		"card.reward":          "Reward",
		"card.difficulty":      "Difficulty",
		"card.system":          "System",
		"type.combat":          "Combat",
		"type.elite":           "Elite",
		"type.trap":            "Trap",
		"type.treasure":        "Treasure",
		"type.event":           "Event",
		"generate.no_system":   "No system selected. Select at least one system before generating.",
		"generate.empty_pool":  "No events match the current selection.",
		"import.parse_failure": "The file could not be read. No events were imported.",
		"export.failure":       "Failed to export the card.",
	},
	"es": {
		"card.type":            "Tipo",
		"card.reward":          "Recompensa",
		"card.difficulty":      "Dificultad",
		"card.system":          "Sistema",
		"type.combat":          "Combate",
		"type.elite":           "Élite",
		"type.trap":            "Trampa",
		"type.treasure":        "Tesoro",
		"type.event":           "Evento",
		"generate.no_system":   "Ningún sistema seleccionado. Seleccione al menos un sistema antes de generar.",
		"generate.empty_pool":  "Ningún evento coincide con la selección actual.",
		"import.parse_failure": "No se pudo leer el archivo. No se importó ningún evento.",
		"export.failure":       "Error al exportar la carta.",
	},
}

// NormalizeType maps legacy English type labels onto the translated
// display label for the current locale. Unrecognized types are shown
// as-is: the type field is free-form, not an enum.
func (t *Translator) NormalizeType(eventType string) string {
	key, ok := typeKeys[strings.ToLower(eventType)]
	if !ok {
		return eventType
	}
	return t.T(key)
}

var typeKeys = map[string]string{
	"combate":   "type.combat",
	"combat":    "type.combat",
	"elite":     "type.elite",
	"armadilha": "type.trap",
	"trap":      "type.trap",
	"tesouro":   "type.treasure",
	"treasure":  "type.treasure",
	"evento":    "type.event",
	"event":     "type.event",
}
