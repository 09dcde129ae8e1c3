package rest

import (
	"context"
	"net/url"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/credits"
)

// CreditsRepository implements the credits ports: balance, settings and admin counters.
type CreditsRepository struct {
	api *apiclient.Client
}

func NewCreditsRepository(api *apiclient.Client) *CreditsRepository {
	return &CreditsRepository{api: api}
}

type balanceResponse struct {
	TotalCredits int64 `json:"total_credits"`
}

type totalResponse struct {
	Total int64 `json:"total"`
}

func (r *CreditsRepository) Balance(ctx context.Context) (int64, error) {
	var out balanceResponse
	if err := r.api.Get(ctx, "credits/balance", nil, &out); err != nil {
		return 0, err
	}
	return out.TotalCredits, nil
}

func (r *CreditsRepository) GetSettings(ctx context.Context) (credits.Settings, error) {
	var s credits.Settings
	if err := r.api.Get(ctx, "credits/settings", nil, &s); err != nil {
		return credits.Settings{}, err
	}
	return s, nil
}

func (r *CreditsRepository) PutSettings(ctx context.Context, s credits.Settings) error {
	return r.api.Put(ctx, "credits/settings", s, nil)
}

func (r *CreditsRepository) UsersTotal(ctx context.Context) (int64, error) {
	var out totalResponse
	if err := r.api.Get(ctx, "admin/users", nil, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}

// TransactionsTotal asks for a single row; only the total matters.
func (r *CreditsRepository) TransactionsTotal(ctx context.Context) (int64, error) {
	var out totalResponse
	q := url.Values{"page": {"1"}, "limit": {"1"}}
	if err := r.api.Get(ctx, "credits/admin/transactions", q, &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}
