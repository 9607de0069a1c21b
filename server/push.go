package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mergington/rosterd/metrics"
	"github.com/mergington/rosterd/registry"
)

const pushTimeout = 30 * time.Second

// rosterPusher pushes a roster occupancy snapshot to the remote write
// endpoint. It implements cron.Runnable and reads the push client from
// the current server deps, so a config reload takes effect on the next
// scheduled push.
type rosterPusher struct {
	registry *registry.Registry
	server   *Server
	logger   *slog.Logger
}

// Run takes one occupancy snapshot and pushes it.
func (p *rosterPusher) Run() error {
	client := p.server.pushClient()
	if client == nil {
		return nil
	}

	occupancies := p.registry.Occupancies()
	now := time.Now()

	ms := make([]metrics.Metric, 0, 2*len(occupancies))
	for _, occ := range occupancies {
		labels := map[string]string{"activity": occ.Activity}
		ms = append(ms,
			metrics.Metric{
				Name:      "activity_participants",
				Value:     float64(occ.Participants),
				Labels:    labels,
				Timestamp: now,
			},
			metrics.Metric{
				Name:      "activity_capacity",
				Value:     float64(occ.Capacity),
				Labels:    labels,
				Timestamp: now,
			},
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := client.Push(ctx, ms...); err != nil {
		return fmt.Errorf("pushing roster snapshot: %w", err)
	}

	p.logger.Debug("roster snapshot pushed", "activities", len(occupancies))
	return nil
}
