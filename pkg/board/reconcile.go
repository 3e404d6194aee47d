package board

import (
	"context"

	"go.uber.org/zap"

	"github.com/dfarias/merenda-gateway-go/pkg/kitchen"
)

// PoolSource marks a gesture originating from the unscheduled pool
// rather than a day column; day ids are positive
const PoolSource = 0

// Gesture is a settled drag: a relation taken from a day column (or the
// pool) and released over a destination. DestDay 0 means the drop
// landed nowhere valid.
type Gesture struct {
	RelationID int `json:"relation_id" binding:"required"`
	SourceDay  int `json:"source_day"`
	DestDay    int `json:"dest_day"`
}

// Outcome classifies how a gesture or removal resolved
type Outcome string

const (
	// OutcomeNoop is a drop with no valid destination, back onto the
	// pool, or onto the day it came from; nothing was sent
	OutcomeNoop Outcome = "noop"
	// OutcomeScheduled is a successful copy from the pool onto a day
	OutcomeScheduled Outcome = "scheduled"
	// OutcomeMoved is a successful assign-to-destination plus
	// remove-from-source pair
	OutcomeMoved Outcome = "moved"
	// OutcomeRemoved is a successful removal of one occurrence
	OutcomeRemoved Outcome = "removed"
	// OutcomeAlreadyScheduled is the backend rejecting a duplicate
	// same-day assignment; a warning, not an error
	OutcomeAlreadyScheduled Outcome = "already_scheduled"
	// OutcomeFailed is any other remote failure
	OutcomeFailed Outcome = "failed"
)

// Result reports how an action resolved. Snapshot is the post-action
// reload when one was performed, nil otherwise; Err keeps the original
// error so callers can classify it further.
type Result struct {
	Outcome  Outcome
	Snapshot *Snapshot
	Err      error
}

// API is the slice of the kitchen client the reconciler mutates through
type API interface {
	AssignDays(ctx context.Context, relationID int, dayIDs []int) error
	UnassignDays(ctx context.Context, relationID int, dayIDs []int) error
}

// Reconciler turns settled drag gestures into the corresponding remote
// calls and re-derives the board from a fresh fetch afterwards. It
// never merges partial state locally: after a mutation the server is
// re-read and believed, including any inconsistency a half-failed move
// left behind.
type Reconciler struct {
	api API
	src Source
	log *zap.Logger
}

// NewReconciler wires a reconciler over the mutation API and the fetch source
func NewReconciler(api API, src Source, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{api: api, src: src, log: log}
}

// Drop resolves a settled drag gesture.
//
// Pool to day is a copy: assign the destination only, the pool is not a
// day and loses nothing. Day to day is a move: assign the destination,
// then remove from the source. The two calls are independent; when the
// first succeeds and the second fails the relation stays on both days
// until someone re-drags it, and the forced reload shows exactly that.
//
// A duplicate-assignment rejection is surfaced as a warning without a
// reload; every other failure reloads so the view returns to server truth.
func (r *Reconciler) Drop(ctx context.Context, g Gesture) Result {
	if g.DestDay == 0 || g.DestDay == g.SourceDay {
		return Result{Outcome: OutcomeNoop}
	}

	if err := r.api.AssignDays(ctx, g.RelationID, []int{g.DestDay}); err != nil {
		if kitchen.IsDuplicateAssignment(err) {
			r.log.Info("assignment already exists",
				zap.Int("relation", g.RelationID),
				zap.Int("day", g.DestDay))
			return Result{Outcome: OutcomeAlreadyScheduled, Err: err}
		}
		r.log.Warn("assign failed", zap.Int("relation", g.RelationID), zap.Error(err))
		return r.failAndReload(ctx, err)
	}

	outcome := OutcomeScheduled
	if g.SourceDay != PoolSource {
		outcome = OutcomeMoved
		if err := r.api.UnassignDays(ctx, g.RelationID, []int{g.SourceDay}); err != nil {
			// double-booked until the next manual fix; reload shows it as-is
			r.log.Warn("unassign after move failed, relation now on both days",
				zap.Int("relation", g.RelationID),
				zap.Int("source_day", g.SourceDay),
				zap.Int("dest_day", g.DestDay),
				zap.Error(err))
			return r.failAndReload(ctx, err)
		}
	}

	snap, err := Load(ctx, r.src)
	if err != nil {
		r.log.Warn("reload after drop failed", zap.Error(err))
		return Result{Outcome: outcome, Err: err}
	}
	return Result{Outcome: outcome, Snapshot: snap}
}

// Remove takes one occurrence off its day. Confirmation is the UI's
// concern; by the time this runs the user already said yes.
func (r *Reconciler) Remove(ctx context.Context, relationID, dayID int) Result {
	if err := r.api.UnassignDays(ctx, relationID, []int{dayID}); err != nil {
		r.log.Warn("removal failed",
			zap.Int("relation", relationID),
			zap.Int("day", dayID),
			zap.Error(err))
		return Result{Outcome: OutcomeFailed, Err: err}
	}

	snap, err := Load(ctx, r.src)
	if err != nil {
		return Result{Outcome: OutcomeRemoved, Err: err}
	}
	return Result{Outcome: OutcomeRemoved, Snapshot: snap}
}

func (r *Reconciler) failAndReload(ctx context.Context, cause error) Result {
	snap, err := Load(ctx, r.src)
	if err != nil {
		r.log.Warn("reload after failure also failed", zap.Error(err))
		return Result{Outcome: OutcomeFailed, Err: cause}
	}
	return Result{Outcome: OutcomeFailed, Snapshot: snap, Err: cause}
}
