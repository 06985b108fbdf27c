package llm

import (
	"context"
	"encoding/json"
	"testing"

	"miraiz/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCompleteJSON(t *testing.T) {
	tests := []struct {
		name     string
		question string
		check    func(t *testing.T, f model.PropertyFilter)
	}{
		{
			name:     "estado vendido",
			question: "propiedades vendidas, estado vendido",
			check: func(t *testing.T, f model.PropertyFilter) {
				require.NotNil(t, f.Estado)
				assert.Equal(t, "vendido", *f.Estado)
			},
		},
		{
			name:     "tipo casa",
			question: "busco una casa",
			check: func(t *testing.T, f model.PropertyFilter) {
				require.NotNil(t, f.Tipo)
				assert.Equal(t, "Casa", *f.Tipo)
			},
		},
		{
			name:     "habitaciones y baños",
			question: "con 3 habitaciones y 2 baños",
			check: func(t *testing.T, f model.PropertyFilter) {
				require.NotNil(t, f.HabitacionesMin)
				assert.Equal(t, 3, *f.HabitacionesMin)
				require.NotNil(t, f.BanosMin)
				assert.Equal(t, 2.0, *f.BanosMin)
			},
		},
		{
			name:     "precio máximo",
			question: "casas con precio menor a 200000",
			check: func(t *testing.T, f model.PropertyFilter) {
				require.NotNil(t, f.PrecioMax)
				assert.Equal(t, 200000.0, *f.PrecioMax)
			},
		},
		{
			name:     "sin señales",
			question: "algo bonito",
			check: func(t *testing.T, f model.PropertyFilter) {
				assert.Equal(t, model.PropertyFilter{}, f)
			},
		},
	}

	client := NewMockClient()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := client.CompleteJSON(context.Background(), "system", tt.question)
			require.NoError(t, err)

			var filter model.PropertyFilter
			require.NoError(t, json.Unmarshal([]byte(out), &filter))
			tt.check(t, filter)
		})
	}
}

func TestMockAsk(t *testing.T) {
	precio := 150000.0
	hab := 3
	banos := 2.5
	ubicacion := "zona 10"
	pctx := &PropertyContext{
		ID:           1,
		Precio:       &precio,
		Habitaciones: &hab,
		Banos:        &banos,
		Ubicacion:    &ubicacion,
	}

	client := NewMockClient()
	ctx := context.Background()

	answer, err := client.Ask(ctx, "¿cuál es el precio?", pctx)
	require.NoError(t, err)
	assert.Equal(t, "El precio es 150000.", answer)

	answer, err = client.Ask(ctx, "¿cuántas habitaciones?", pctx)
	require.NoError(t, err)
	assert.Equal(t, "Tiene 3 habitaciones.", answer)

	answer, err = client.Ask(ctx, "¿cuántos baños tiene?", pctx)
	require.NoError(t, err)
	assert.Equal(t, "Tiene 2.5 baños.", answer)

	answer, err = client.Ask(ctx, "¿dónde está ubicada?", pctx)
	require.NoError(t, err)
	assert.Equal(t, "Ubicación: zona 10.", answer)
}

func TestMockAskNoData(t *testing.T) {
	client := NewMockClient()
	ctx := context.Background()

	answer, err := client.Ask(ctx, "¿cuántos parqueos tiene?", &PropertyContext{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, NoDataAnswer, answer)

	answer, err = client.Ask(ctx, "¿tiene piscina?", &PropertyContext{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, NoDataAnswer, answer)
}

func TestMockAskWithoutContext(t *testing.T) {
	client := NewMockClient()

	answer, err := client.Ask(context.Background(), "hola", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.NotEqual(t, NoDataAnswer, answer)
}
