package credits

import "context"

// BalanceRepository reads the authoritative total (credits/balance).
type BalanceRepository interface {
	Balance(ctx context.Context) (int64, error)
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (Settings, error)
	PutSettings(ctx context.Context, s Settings) error
}

// StatsRepository backs the admin dashboard counters.
type StatsRepository interface {
	UsersTotal(ctx context.Context) (int64, error)
	TransactionsTotal(ctx context.Context) (int64, error)
}
