package model

// Limit bounds shared by every entry point that accepts a result limit.
const (
	MinLimit = 1
	MaxLimit = 100
)

// PropertyFilter is the structured query vocabulary shared between the
// LLM-derived and rule-derived paths. JSON tags match the schema the model
// is instructed to produce.
type PropertyFilter struct {
	Estado          *string  `json:"estado,omitempty"`
	Limit           *int     `json:"limit,omitempty"`
	Cursor          *int     `json:"cursor,omitempty"`
	Fields          *string  `json:"fields,omitempty"`
	PrecioMin       *float64 `json:"precio_min,omitempty"`
	PrecioMax       *float64 `json:"precio_max,omitempty"`
	HabitacionesMin *int     `json:"habitaciones_min,omitempty"`
	BanosMin        *float64 `json:"baños_min,omitempty"`
	AreaMin         *float64 `json:"area_min,omitempty"`
	Tipo            *string  `json:"tipo,omitempty"`
}

// ClampLimit forces a limit into [MinLimit, MaxLimit]. Applied to every
// limit regardless of source: request query, LLM output, or default.
func ClampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ListRequest is the structured-list query accepted by the lite endpoint.
// Estado takes a comma-separated set of states (multi-value match), unlike
// the NLQ path's single-value equality; the two semantics are intentional
// and kept distinct.
type ListRequest struct {
	Fields  string `form:"fields"`
	Estado  string `form:"estado"`
	AfterID *int   `form:"afterId"`
	Limit   *int   `form:"limit"`
}

// ListResult is a bounded page of (possibly field-masked) items. Cursor is
// set only when the page is full and at least one further item exists.
type ListResult struct {
	Success bool             `json:"success"`
	Data    []map[string]any `json:"data"`
	Cursor  *int             `json:"nextCursor"`
}
