package nlq

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"miraiz/internal/catalog"
	"miraiz/internal/llm"
	"miraiz/internal/model"
	"miraiz/internal/utils"

	"github.com/sirupsen/logrus"
)

// systemPrompt instructs the model to translate a question into the
// PropertyFilter schema. Kept in Spanish: the catalog and its users are.
const systemPrompt = `Tu rol es convertir la pregunta de un usuario en un objeto de filtro JSON para una API de propiedades.
La pregunta es en lenguaje natural y debes extraer los parámetros de filtrado.
El JSON debe tener la siguiente estructura: { "estado": "disponible|vendido|reservado", "limit": number, "fields": "string", "precio_min": number, "precio_max": number, "habitaciones_min": number, "baños_min": number, "area_min": number, "tipo": "Lote|Casa|Apartamento" }.
- Si el usuario no especifica 'limit', usa 10.
- El campo 'estado' es opcional. Solo inclúyelo si el usuario lo pide explícitamente (ej: 'propiedades vendidas').
- En 'fields', incluye SIEMPRE 'id,propiedad,precio,imagenes.url,tipo,habitaciones,baños,area'.
- Extrae filtros numéricos como rangos (precio_min, precio_max) o mínimos (habitaciones_min).
- Responde únicamente con el objeto JSON. No incluyas texto adicional.
Ejemplo: 'casas con 3 cuartos y baratas' -> { "tipo": "Casa", "habitaciones_min": 3, "precio_max": 400000, "limit": 10, "fields": "id,propiedad,precio,imagenes.url,tipo,habitaciones,baños,area" }`

// Translator turns a natural-language question into a property filter and
// runs it against the cached catalog. The completion capability proposes
// the filter; local regex extraction backfills what it left unset, and an
// overly strict location guess degrades to the unrestricted candidate set
// rather than returning nothing.
type Translator struct {
	llm     llm.Client
	catalog *catalog.Service
	logger  *logrus.Logger
}

// NewTranslator creates a translator over the given capabilities.
func NewTranslator(client llm.Client, cat *catalog.Service, logger *logrus.Logger) *Translator {
	return &Translator{llm: client, catalog: cat, logger: logger}
}

// RunResult is one finished translation run. Filter is the effective
// filter the run settled on, with Limit reflecting the applied value.
type RunResult struct {
	Answer  string
	Matched []*model.PropertyItem
	Filter  model.PropertyFilter
}

// Run translates question and returns at most limit matches.
//
// The request-level limit strictly overrides whatever the model proposes.
// estadoDefault is accepted for wire compatibility but does not backfill
// the filter: estado applies only when the question asked for it. A
// transport or status failure of the completion call is returned as-is;
// only malformed model output is recovered from, with an empty filter.
func (t *Translator) Run(ctx context.Context, question string, limit int, estadoDefault, locale *string) (*RunResult, error) {
	_ = estadoDefault

	content, err := t.llm.CompleteJSON(ctx, systemPrompt, question)
	if err != nil {
		return nil, fmt.Errorf("completion call failed: %w", err)
	}

	var filter model.PropertyFilter
	if err := utils.DecodeModelJSON(content, &filter); err != nil {
		t.logger.WithError(err).Warn("model returned invalid filter JSON, using empty filter")
		filter = model.PropertyFilter{}
	}

	// Request limit wins over the model's proposal, always clamped.
	limit = model.ClampLimit(limit)

	uq := strings.ToLower(question)
	augmentFilter(&filter, uq)
	zone := detectZone(uq)
	parqueosMin := detectParqueos(uq)
	tipo := filter.Tipo
	if tipo == nil || strings.TrimSpace(*tipo) == "" {
		tipo = inferTipo(uq)
	}

	candidates := t.filterCandidates(ctx, &filter, tipo, parqueosMin)

	var matched []*model.PropertyItem
	switch {
	case zone != nil:
		matched = takeWithFallback(candidates, limit, zoneMatcher(*zone))
	default:
		keywords := locationKeywords(uq)
		if len(keywords) > 0 {
			matched = takeWithFallback(candidates, limit, keywordMatcher(keywords))
		} else {
			matched = take(candidates, limit)
		}
	}

	answer := fmt.Sprintf("Aquí tienes %d propiedades que coinciden con tu búsqueda.", len(matched))
	if locale != nil && strings.ToLower(*locale) == "en" {
		answer = fmt.Sprintf("Here are %d properties matching your search.", len(matched))
	}

	filter.Limit = &limit
	return &RunResult{Answer: answer, Matched: matched, Filter: filter}, nil
}

// filterCandidates applies the conjunctive predicates: estado equality,
// price range, room/bath/area minimums, parking minimum, and type
// substring against tipo, clase_tipo, or the project's tipo.
func (t *Translator) filterCandidates(ctx context.Context, f *model.PropertyFilter, tipo *string, parqueosMin *int) []*model.PropertyItem {
	var out []*model.PropertyItem
	for _, p := range t.catalog.Items(ctx) {
		if f.Estado != nil && strings.TrimSpace(*f.Estado) != "" {
			if p.Estado == nil || !strings.EqualFold(*p.Estado, *f.Estado) {
				continue
			}
		}
		if f.PrecioMin != nil && floatOrZero(p.Precio) < *f.PrecioMin {
			continue
		}
		if f.PrecioMax != nil && floatOrZero(p.Precio) > *f.PrecioMax {
			continue
		}
		if f.HabitacionesMin != nil && intOrZero(p.Habitaciones) < *f.HabitacionesMin {
			continue
		}
		if f.BanosMin != nil && floatOrZero(p.CanonicalBanos()) < *f.BanosMin {
			continue
		}
		if f.AreaMin != nil && floatOrZero(p.Area) < *f.AreaMin {
			continue
		}
		if parqueosMin != nil && intOrZero(p.Parqueos) < *parqueosMin {
			continue
		}
		if tipo != nil && strings.TrimSpace(*tipo) != "" && !matchesTipo(p, *tipo) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesTipo(p *model.PropertyItem, tipo string) bool {
	if containsFold(p.Tipo, tipo) || containsFold(p.ClaseTipo, tipo) {
		return true
	}
	return p.Proyecto != nil && containsFold(p.Proyecto.Tipo, tipo)
}

// zoneMatcher matches "zona N" (optionally zero-padded) as whole words in
// the listing's location or its project's address.
func zoneMatcher(zone int) func(*model.PropertyItem) bool {
	re := regexp.MustCompile(fmt.Sprintf(`\bzona\s*0?%d\b`, zone))
	return func(p *model.PropertyItem) bool {
		return re.MatchString(lowered(p.Ubicacion)) || re.MatchString(projectAddress(p))
	}
}

// keywordMatcher matches any remaining free-text token by containment in
// the location or project-address text.
func keywordMatcher(keywords []string) func(*model.PropertyItem) bool {
	return func(p *model.PropertyItem) bool {
		u := lowered(p.Ubicacion)
		d := projectAddress(p)
		for _, k := range keywords {
			if strings.Contains(u, k) || strings.Contains(d, k) {
				return true
			}
		}
		return false
	}
}

// takeWithFallback restricts candidates by match, but discards the
// restriction when it yields nothing: a bad location guess must not turn a
// non-empty result set into an empty one.
func takeWithFallback(candidates []*model.PropertyItem, limit int, match func(*model.PropertyItem) bool) []*model.PropertyItem {
	narrowed := make([]*model.PropertyItem, 0, limit)
	for _, p := range candidates {
		if match(p) {
			narrowed = append(narrowed, p)
			if len(narrowed) == limit {
				break
			}
		}
	}
	if len(narrowed) > 0 {
		return narrowed
	}
	return take(candidates, limit)
}

func take(items []*model.PropertyItem, limit int) []*model.PropertyItem {
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]*model.PropertyItem, len(items))
	copy(out, items)
	return out
}

func projectAddress(p *model.PropertyItem) string {
	if p.Proyecto == nil {
		return ""
	}
	return lowered(p.Proyecto.Direccion)
}

func lowered(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(*s)
}

func containsFold(s *string, sub string) bool {
	if s == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*s), strings.ToLower(sub))
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
