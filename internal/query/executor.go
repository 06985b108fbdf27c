package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"miraiz/internal/cache"
	"miraiz/internal/catalog"
	"miraiz/internal/model"

	"github.com/sirupsen/logrus"
)

// DefaultLimit applies when the lite endpoint gets no limit parameter.
const DefaultLimit = 20

// DefaultFields is the mask applied when the caller requests none.
const DefaultFields = "id,propiedad,precio,imagenes.url"

// Service applies structured list queries over the cached catalog
// snapshot: state-set filtering, cursor pagination, field masking. Each
// distinct fields/estado/cursor/limit combination is cached independently
// under its own TTL window.
type Service struct {
	catalog *catalog.Service
	cache   *cache.TTLCache[*model.ListResult]
	logger  *logrus.Logger
}

// NewService creates a query service over the given catalog.
func NewService(cat *catalog.Service, logger *logrus.Logger) *Service {
	return &Service{
		catalog: cat,
		cache:   cache.New[*model.ListResult](),
		logger:  logger,
	}
}

// List runs a structured query and returns one bounded page. Estado
// accepts a comma-separated set matched case-insensitively; this
// deliberately differs from the NLQ path's single-value equality.
func (s *Service) List(ctx context.Context, req model.ListRequest) *model.ListResult {
	key := fmt.Sprintf("lite:%s:%s:%s:%s",
		req.Fields, req.Estado, intOrEmpty(req.AfterID), intOrEmpty(req.Limit))

	result, _ := s.cache.GetOrLoad(key, s.catalog.TTL(), func() (*model.ListResult, error) {
		return s.list(ctx, req), nil
	})
	return result
}

func (s *Service) list(ctx context.Context, req model.ListRequest) *model.ListResult {
	items := s.catalog.Items(ctx)

	// Pagination is by ascending id with the cursor as an exclusive
	// lower bound, so order before filtering.
	sorted := make([]*model.PropertyItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	states := parseStateSet(req.Estado)

	limit := DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	limit = model.ClampLimit(limit)

	// Collect one candidate past the limit so the cursor is emitted only
	// when a further page actually exists.
	page := make([]*model.PropertyItem, 0, limit+1)
	for _, p := range sorted {
		if req.AfterID != nil && p.ID <= *req.AfterID {
			continue
		}
		if len(states) > 0 && !states[lowerOrEmpty(p.Estado)] {
			continue
		}
		page = append(page, p)
		if len(page) > limit {
			break
		}
	}

	var next *int
	if len(page) > limit {
		page = page[:limit]
		last := page[len(page)-1].ID
		next = &last
	}

	fields := req.Fields
	if strings.TrimSpace(fields) == "" {
		fields = DefaultFields
	}
	mask := ParseFieldMask(fields)

	masked := make([]map[string]any, 0, len(page))
	for _, p := range page {
		masked = append(masked, Project(p, mask))
	}

	return &model.ListResult{Success: true, Data: masked, Cursor: next}
}

// parseStateSet splits a comma-separated estado parameter into a lowercase
// membership set. Empty input means no state filtering.
func parseStateSet(estado string) map[string]bool {
	states := make(map[string]bool)
	for _, s := range strings.Split(estado, ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			states[s] = true
		}
	}
	return states
}

func lowerOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(*s)
}

func intOrEmpty(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}
