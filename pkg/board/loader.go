package board

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

// Source is the slice of the kitchen API the loader needs
type Source interface {
	Needs(ctx context.Context) ([]models.Need, error)
	NeedWithStudents(ctx context.Context, id int) (models.NeedWithStudents, error)
	WeeklySchedule(ctx context.Context) ([]models.ScheduleDay, error)
}

// Load performs the full three-source fetch and derives a fresh
// Snapshot. There is no incremental path: callers Load again after
// every mutation and after explicit refresh triggers.
func Load(ctx context.Context, src Source) (*Snapshot, error) {
	g, gctx := errgroup.WithContext(ctx)

	var needs []models.Need
	var days []models.ScheduleDay
	g.Go(func() error {
		var err error
		needs, err = src.Needs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		days, err = src.WeeklySchedule(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	needs = SchedulableNeeds(needs)

	// one detail fetch per need, order preserved by slot
	details := make([]models.NeedWithStudents, len(needs))
	g, gctx = errgroup.WithContext(ctx)
	for i, need := range needs {
		i, need := i, need
		g.Go(func() error {
			var err error
			details[i], err = src.NeedWithStudents(gctx, need.ID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ix := BuildIndex(details)
	return &Snapshot{
		Needs: needs,
		Index: ix,
		Board: Assemble(days, ResolveDays(days, ix)),
	}, nil
}
