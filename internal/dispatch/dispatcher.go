// Package dispatch carries out the mutation intents emitted by the
// interaction machine against the time block service.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/weekgrid/internal/domain/timeblock"
	"github.com/rpggio/weekgrid/internal/interaction"
)

// ErrNotMutation is returned for intents that belong to the editor rather
// than the store.
var ErrNotMutation = errors.New("intent is not a mutation")

// BlockService is the subset of the time block service the dispatcher uses.
type BlockService interface {
	Update(ctx context.Context, userID string, req timeblock.UpdateRequest) (*timeblock.TimeBlock, error)
	Duplicate(ctx context.Context, userID string, req timeblock.DuplicateRequest) (*timeblock.TimeBlock, error)
}

// Dispatcher applies intents on behalf of one user.
type Dispatcher struct {
	blocks BlockService
	userID string
	logger *slog.Logger
}

// New creates a dispatcher.
func New(blocks BlockService, userID string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{blocks: blocks, userID: userID, logger: logger}
}

// IsMutation reports whether Apply would act on the intent.
func IsMutation(in interaction.Intent) bool {
	switch in.(type) {
	case interaction.Move, interaction.Resize, interaction.Duplicate:
		return true
	}
	return false
}

// Apply performs a mutation intent. Failures are logged and returned; the
// caller decides whether to reconcile.
func (d *Dispatcher) Apply(ctx context.Context, in interaction.Intent) error {
	var err error
	switch in := in.(type) {
	case interaction.Move:
		_, err = d.blocks.Update(ctx, d.userID, timeblock.UpdateRequest{
			ID:        in.BlockID,
			StartTime: &in.Start,
			EndTime:   &in.End,
			Title:     &in.Title,
			Color:     &in.Color,
		})
		if err != nil {
			err = fmt.Errorf("move block %s: %w", in.BlockID, err)
		}

	case interaction.Resize:
		req := timeblock.UpdateRequest{ID: in.BlockID}
		if in.Edge == interaction.EdgeTop {
			req.StartTime = &in.Time
		} else {
			req.EndTime = &in.Time
		}
		_, err = d.blocks.Update(ctx, d.userID, req)
		if err != nil {
			err = fmt.Errorf("resize block %s: %w", in.BlockID, err)
		}

	case interaction.Duplicate:
		_, err = d.blocks.Duplicate(ctx, d.userID, timeblock.DuplicateRequest{
			ID:        in.BlockID,
			StartTime: in.Start,
			EndTime:   in.End,
		})
		if err != nil {
			err = fmt.Errorf("duplicate block %s: %w", in.BlockID, err)
		}

	default:
		return ErrNotMutation
	}

	if err != nil && d.logger != nil {
		d.logger.Warn("intent failed", "intent", fmt.Sprintf("%T", in), "error", err)
	}
	return err
}
