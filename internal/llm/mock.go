package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"miraiz/internal/model"
)

// MockClient is the default provider when no API key is configured. It
// derives a filter from a handful of keyword rules so the whole pipeline
// works offline, and answers interaction questions straight from the
// property context.
type MockClient struct{}

// NewMockClient creates the offline provider.
func NewMockClient() *MockClient {
	return &MockClient{}
}

var (
	mockHabRe    = regexp.MustCompile(`(\d+)\s*habitaciones`)
	mockBanosRe  = regexp.MustCompile(`(\d+)\s*baños`)
	mockPrecioRe = regexp.MustCompile(`precio menor a (\d+)`)
)

// CompleteJSON emulates the translation prompt with keyword rules and
// returns the filter as a JSON object, like a well-behaved model would.
func (m *MockClient) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	q := strings.ToLower(user)
	filter := model.PropertyFilter{}

	if strings.Contains(q, "vendido") {
		filter.Estado = strPtr("vendido")
	}
	if strings.Contains(q, "reservado") {
		filter.Estado = strPtr("reservado")
	}
	if strings.Contains(q, "casa") {
		filter.Tipo = strPtr("Casa")
	}
	if strings.Contains(q, "lote") {
		filter.Tipo = strPtr("Lote")
	}
	if m := mockHabRe.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			filter.HabitacionesMin = &n
		}
	}
	if m := mockBanosRe.FindStringSubmatch(q); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			filter.BanosMin = &n
		}
	}
	if m := mockPrecioRe.FindStringSubmatch(q); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			filter.PrecioMax = &n
		}
	}

	out, err := json.Marshal(filter)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Ask answers from the property context only, mirroring the guardrail the
// real provider is prompted with.
func (m *MockClient) Ask(ctx context.Context, question string, pctx *PropertyContext) (string, error) {
	q := strings.ToLower(question)

	if pctx == nil {
		return "Puedo responder sobre precio, habitaciones, baños, m² y ubicación de propiedades del catálogo.", nil
	}

	switch {
	case strings.Contains(q, "precio"):
		if pctx.Precio != nil {
			return fmt.Sprintf("El precio es %g.", *pctx.Precio), nil
		}
	case strings.Contains(q, "habitac"):
		if pctx.Habitaciones != nil {
			return fmt.Sprintf("Tiene %d habitaciones.", *pctx.Habitaciones), nil
		}
	case strings.Contains(q, "baño"), strings.Contains(q, "banio"), strings.Contains(q, "banos"):
		if pctx.Banos != nil {
			return fmt.Sprintf("Tiene %g baños.", *pctx.Banos), nil
		}
	case strings.Contains(q, "parqueo"):
		if pctx.Parqueos != nil {
			return fmt.Sprintf("Tiene %d parqueos.", *pctx.Parqueos), nil
		}
	case strings.Contains(q, "m2"), strings.Contains(q, "metros"):
		if pctx.M2Construccion != nil {
			return fmt.Sprintf("Área construida: %g m².", *pctx.M2Construccion), nil
		}
	case strings.Contains(q, "ubic"):
		if pctx.Ubicacion != nil && *pctx.Ubicacion != "" {
			return fmt.Sprintf("Ubicación: %s.", *pctx.Ubicacion), nil
		}
	}

	return NoDataAnswer, nil
}

func strPtr(s string) *string {
	return &s
}
