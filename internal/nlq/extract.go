package nlq

import (
	"regexp"
	"strconv"
	"strings"

	"miraiz/internal/model"
)

// Local extraction patterns. These backfill only fields the completion
// step left unset; they never override a model-supplied value.
var (
	zoneRe         = regexp.MustCompile(`\bzona\s*(\d{1,2})\b`)
	habitacionesRe = regexp.MustCompile(`(\d{1,2})\s*(habitaciones?|cuartos?|dormitorios?)`)
	banosRe        = regexp.MustCompile(`(\d{1,2})\s*(bañ(?:os|o)|ban(?:os|o))`)
	areaRe         = regexp.MustCompile(`(\d{2,4})\s*(m2|metros cuadrados|metros)`)
	parqueosRe     = regexp.MustCompile(`(\d{1,2})\s*(parqueos?|estacionamientos?|garajes?|garage)`)

	casaRe        = regexp.MustCompile(`\bcasas?\b`)
	apartamentoRe = regexp.MustCompile(`\bapartamentos?\b`)
	terrenoRe     = regexp.MustCompile(`\b(terrenos?|lotes?)\b`)
)

// stopwords are tokens that never identify a location.
var stopwords = map[string]bool{
	"en": true, "de": true, "la": true, "el": true, "los": true, "las": true,
	"y": true, "con": true, "para": true, "por": true, "a": true, "un": true,
	"una": true, "unos": true, "unas": true, "del": true, "al": true,
	"lo": true, "su": true, "sus": true, "mi": true, "mis": true, "tu": true,
	"tus": true, "zona": true, "barato": true, "barata": true,
	"baratos": true, "baratas": true, "muy": true,
}

// typeWords are property-type tokens; they feed tipo inference, not
// location matching.
var typeWords = map[string]bool{
	"casa": true, "casas": true, "terreno": true, "terrenos": true,
	"apartamento": true, "apartamentos": true, "lote": true, "lotes": true,
}

// augmentFilter fills numeric filter gaps from the lowercased question.
func augmentFilter(f *model.PropertyFilter, uq string) {
	if f.HabitacionesMin == nil {
		if m := habitacionesRe.FindStringSubmatch(uq); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				f.HabitacionesMin = &n
			}
		}
	}
	if f.BanosMin == nil {
		if m := banosRe.FindStringSubmatch(uq); m != nil {
			if n, err := strconv.ParseFloat(m[1], 64); err == nil {
				f.BanosMin = &n
			}
		}
	}
	if f.AreaMin == nil {
		if m := areaRe.FindStringSubmatch(uq); m != nil {
			if n, err := strconv.ParseFloat(m[1], 64); err == nil {
				f.AreaMin = &n
			}
		}
	}
}

// detectZone returns an explicit "zona N" number, if present.
func detectZone(uq string) *int {
	m := zoneRe.FindStringSubmatch(uq)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// detectParqueos extracts a parking minimum. It is not part of the filter
// schema; the translator applies it as an extra predicate.
func detectParqueos(uq string) *int {
	m := parqueosRe.FindStringSubmatch(uq)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// inferTipo maps Spanish house/apartment/land synonyms to a catalog type
// when the model supplied none.
func inferTipo(uq string) *string {
	var tipo string
	switch {
	case casaRe.MatchString(uq):
		tipo = "Casa"
	case apartamentoRe.MatchString(uq):
		tipo = "Apartamento"
	case terrenoRe.MatchString(uq):
		tipo = "Terreno"
	default:
		return nil
	}
	return &tipo
}

// locationKeywords returns the free-text tokens left after stripping
// stopwords and type words; they drive substring location narrowing when
// no explicit zone was named.
func locationKeywords(uq string) []string {
	cleaned := strings.NewReplacer(",", " ", ".", " ").Replace(uq)

	var keywords []string
	for _, tok := range strings.Fields(cleaned) {
		tok = strings.TrimSpace(tok)
		if len(tok) > 1 && !stopwords[tok] && !typeWords[tok] {
			keywords = append(keywords, tok)
		}
	}
	return keywords
}
