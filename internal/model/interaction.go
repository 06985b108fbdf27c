package model

import "time"

// Interaction statuses.
const (
	InteractionPending  = "pendiente"
	InteractionAnswered = "respondida"
)

// Interaction is one question/answer exchange about a property.
type Interaction struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	PropiedadID *int      `json:"propiedadId,omitempty" db:"propiedad_id"`
	Pregunta    string    `json:"pregunta" db:"pregunta"`
	Respuesta   *string   `json:"respuesta,omitempty" db:"respuesta"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// InteractionMetrics aggregates stored interactions by status.
type InteractionMetrics struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}
