package health

import (
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	"github.com/tungshoop/tungcart/internal/config"
)

// NewHealthHandler builds the health endpoint. The audit database check is
// only registered when a sink is configured; the sink is optional and its
// absence is healthy.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "tungcart",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
	)
	if err != nil {
		return nil, err
	}

	if cfg.AuditDB.Enabled() {
		err = h.Register(health.Config{
			Name:      "audit-db",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.AuditDB.GetDSN(),
			}),
		})
		if err != nil {
			return nil, err
		}
	}

	return h, nil
}
