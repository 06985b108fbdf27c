package llm

import "context"

// Client is the completion capability the core consumes. CompleteJSON runs
// the filter-translation prompt and returns the raw model output;
// transport errors are the caller's problem. Ask answers a free-form
// question about one property, grounded only on the supplied context.
type Client interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
	Ask(ctx context.Context, question string, pctx *PropertyContext) (string, error)
}

// PropertyContext is the slice of one listing handed to the model when
// answering a question about it. Only these fields ever reach the provider.
type PropertyContext struct {
	ID             int
	Precio         *float64
	Habitaciones   *int
	Banos          *float64
	Parqueos       *int
	M2Construccion *float64
	Ubicacion      *string
}

// NoDataAnswer is the guardrail reply for questions the context cannot
// answer.
const NoDataAnswer = "No tengo ese dato en el catálogo."
