package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/telemetry"
)

// Run executes the main game loop until the phase reaches exit or defeat.
// Cancelling ctx sets the exit flag.
func (g *Game) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, g.RequestExit)
	defer stop()

	for {
		if ctx.Err() != nil {
			g.RequestExit()
		}
		phase := g.Phase()
		g.interact.DrawUI(g)

		done, err := g.step(ctx, phase)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// step dispatches one iteration of the loop. It reports whether the loop
// should end.
func (g *Game) step(ctx context.Context, phase Phase) (bool, error) {
	if phase != g.lastPhase {
		alive := 0
		if len(g.Parties) > 0 {
			alive = g.Parties[0].AliveCount()
		}
		tracer := telemetry.Tracer("game")
		_, span := tracer.Start(ctx, "game.phase")
		span.SetAttributes(
			attribute.String("from", g.lastPhase.String()),
			attribute.String("to", phase.String()),
			attribute.Int("parties", len(g.Parties)),
			attribute.Int("player_alive", alive),
		)
		span.End()
		g.logger.Info("phase",
			zap.Stringer("from", g.lastPhase),
			zap.Stringer("to", phase),
			zap.Int("player_alive", alive),
		)
		g.lastPhase = phase
	}

	switch phase {
	case PhaseMenu:
		g.log(g.DoMenu(ctx))
	case PhaseCombat:
		g.log(g.DoCombat(ctx))
	case PhaseVictory:
		g.log(g.DoVictory(ctx))
	case PhaseDefeat:
		g.log(g.DoDefeat(ctx))
		return true, nil
	case PhaseExit:
		return true, nil
	default:
		return true, fmt.Errorf("%w: %d", ErrUnknownPhase, int(phase))
	}
	return false, nil
}

func (g *Game) log(text string) {
	if text != "" {
		g.interact.Log(text)
	}
}

// DoMenu lets the next character pick a game-level action.
func (g *Game) DoMenu(ctx context.Context) string {
	return g.doMenuAction(ctx, false)
}

// DoCombat lets the next character pick a character or game-level action.
func (g *Game) DoCombat(ctx context.Context) string {
	return g.doMenuAction(ctx, true)
}

func (g *Game) doMenuAction(ctx context.Context, allowCharacterActions bool) string {
	actor, ok := g.NextCharacter()
	if !ok {
		return "Nobody is able to act."
	}
	return g.Resolve(ctx, actor, allowCharacterActions)
}

// DoVictory keeps only the player party and clears the display.
func (g *Game) DoVictory(context.Context) string {
	if len(g.Parties) > 1 {
		g.Parties = g.Parties[:1]
	}
	g.interact.Clear()
	return "The player party was victorious!"
}

// DoDefeat reports the player's defeat.
func (g *Game) DoDefeat(context.Context) string {
	return "The player party was defeated!"
}
