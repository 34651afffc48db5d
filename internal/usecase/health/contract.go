package health

import "context"

// DBPinger checks cache store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// TranslationChecker checks translation provider availability.
type TranslationChecker interface {
	HealthCheck(ctx context.Context) error
}
