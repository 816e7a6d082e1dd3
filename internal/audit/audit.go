package audit

import (
	"context"

	"github.com/tungshoop/tungcart/internal/models"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusError   = "error"
)

// Sink receives an (action, status, snapshot) triple for every mutating cart
// operation. The sink is an optional collaborator: callers must keep working
// when no sink is configured or a sink write fails.
type Sink interface {
	Log(ctx context.Context, action, status string, snapshot *models.Snapshot) error
}

type nopSink struct{}

func (nopSink) Log(context.Context, string, string, *models.Snapshot) error {
	return nil
}

// NewNopSink returns a sink that discards every record.
func NewNopSink() Sink {
	return nopSink{}
}
