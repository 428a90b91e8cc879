package chart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nicolasberthel/enerfolio/pkg/adapters"
	"github.com/nicolasberthel/enerfolio/pkg/models/api"
	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
	chartsvc "github.com/nicolasberthel/enerfolio/pkg/services/chart"
	"github.com/rs/zerolog"
)

// Builder runs one chart assembly.
type Builder interface {
	Build(ctx context.Context, req chartsvc.Request) (domain.ChartData, error)
}

// PortfolioService supplies the investment data charts are scaled with.
type PortfolioService interface {
	GetPortfolio(ctx context.Context, userID string) (domain.Portfolio, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
}

type Handler struct {
	builder     Builder
	portfolio   PortfolioService
	defaultUser string
}

func NewHandler(builder Builder, portfolio PortfolioService, defaultUser string) *Handler {
	return &Handler{
		builder:     builder,
		portfolio:   portfolio,
		defaultUser: defaultUser,
	}
}

// GetMeterChart serves the reconciled consumption/production chart for one
// meter. Production fetch failures degrade silently to zero-valued series;
// only a consumption failure surfaces as an error.
func (h *Handler) GetMeterChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	meter := chi.URLParam(r, "meter")

	granularity := domain.GranularityDay
	if s := r.URL.Query().Get("granularity"); s != "" {
		var err error
		granularity, err = domain.ParseGranularity(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	refDate := time.Now().UTC()
	if s := r.URL.Query().Get("date"); s != "" {
		var err error
		refDate, err = adapters.ParseTimestamp(s)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
	}

	user := r.URL.Query().Get("user")
	if user == "" {
		user = h.defaultUser
	}

	p, err := h.portfolio.GetPortfolio(ctx, user)
	if err != nil {
		logger.Error().Err(err).Str("user", user).Msg("failed to fetch portfolio")
		http.Error(w, "failed to fetch portfolio", http.StatusBadGateway)
		return
	}

	data, err := h.builder.Build(ctx, chartsvc.Request{
		MeterID:       meter,
		Investments:   p.Investments,
		ReferenceDate: refDate,
		Granularity:   granularity,
	})
	if errors.Is(err, chartsvc.ErrStaleRequest) {
		http.Error(w, "superseded by a newer request", http.StatusConflict)
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("meter", meter).Msg("chart build failed")
		http.Error(w, "failed to build chart", http.StatusBadGateway)
		return
	}

	writeJSON(w, logger, adapters.MapDomainChartToApi(data))
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	projects, err := h.portfolio.ListProjects(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list projects")
		http.Error(w, "failed to list projects", http.StatusBadGateway)
		return
	}

	out := make([]api.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, adapters.MapDomainProjectToApi(p))
	}
	writeJSON(w, logger, out)
}

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	user := chi.URLParam(r, "user")

	p, err := h.portfolio.GetPortfolio(ctx, user)
	if err != nil {
		logger.Error().Err(err).Str("user", user).Msg("failed to fetch portfolio")
		http.Error(w, "failed to fetch portfolio", http.StatusBadGateway)
		return
	}

	writeJSON(w, logger, adapters.MapDomainPortfolioToApi(p))
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
