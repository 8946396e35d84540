package game

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/telemetry"
)

// maxPolicyAttempts bounds how often an AI actor may retry a turn before it
// passes.
const maxPolicyAttempts = 32

// =============================================================================
// Candidate Targeting
// =============================================================================

// Scoped returns the characters the named action's scope covers, in
// party/member order, before any filtering.
func (g *Game) Scoped(actor *entity.Character, scope entity.Scope) []*entity.Character {
	own := g.PartyOf(actor)
	var out []*entity.Character

	switch scope {
	case entity.ScopeSelf:
		out = append(out, actor)
	case entity.ScopeAlly, entity.ScopeParty:
		if own >= 0 {
			out = append(out, g.Parties[own].Members...)
		}
	case entity.ScopeEnemy, entity.ScopeEnemies:
		for i, p := range g.Parties {
			if i != own {
				out = append(out, p.Members...)
			}
		}
	case entity.ScopeEveryone:
		out = g.Characters()
	}
	return out
}

// Filtered narrows candidates by filter, keeping their order.
func (g *Game) Filtered(candidates []*entity.Character, filter entity.Filter) []*entity.Character {
	keep := func(c *entity.Character) bool {
		switch filter {
		case entity.FilterOnlyHealthy:
			return c.Healthy()
		case entity.FilterOnlyAlive:
			return c.Alive()
		case entity.FilterOnlyUnhealthy:
			return c.Alive() && !c.Healthy()
		case entity.FilterOnlyDead:
			return !c.Alive()
		case entity.FilterOnlyUndefeated:
			pi := g.PartyOf(c)
			return pi >= 0 && !g.Parties[pi].Defeated()
		default:
			return true
		}
	}

	var out []*entity.Character
	for _, c := range candidates {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Candidates resolves the targets of the named action for actor. Singular
// scopes are disambiguated by the player or the AI policy. The boolean is
// false when there are no candidates or the choice was cancelled.
func (g *Game) Candidates(actor *entity.Character, name string) ([]*entity.Character, bool) {
	action, ok := actor.Action(name)
	if !ok {
		return nil, false
	}

	candidates := g.Filtered(g.Scoped(actor, action.Scope), action.Filter)
	if len(candidates) == 0 {
		return nil, false
	}
	if !action.Scope.Singular() {
		return candidates, true
	}

	var (
		chosen []*entity.Character
		picked bool
	)
	if g.UseAI(actor) && g.policy != nil {
		chosen, picked = g.policy.ChooseTargets(g, actor, candidates)
	} else {
		chosen, picked = g.interact.QueryTargets(actor, candidates)
	}
	if !picked || len(chosen) == 0 {
		return nil, false
	}
	return chosen, true
}

// =============================================================================
// Action Resolver
// =============================================================================

// ResourceLabel returns the cost label shown next to an action in menus.
func (g *Game) ResourceLabel(actor *entity.Character, name string) string {
	if a, ok := actor.Action(name); ok {
		return a.CostLabel()
	}
	return ""
}

// Options assembles the labels offered to actor: its own visible actions when
// allowed, followed by the game-level actions available to it.
func (g *Game) Options(actor *entity.Character, allowCharacterActions bool) []Option {
	var options []Option
	if allowCharacterActions {
		for _, name := range actor.VisibleActions() {
			options = append(options, Option{Label: name, Resource: g.ResourceLabel(actor, name)})
		}
	}
	for _, a := range g.availableActions(actor) {
		options = append(options, Option{Label: a.Name})
	}
	return options
}

// queryLabel delegates the label query to the player or the AI policy.
func (g *Game) queryLabel(actor *entity.Character, options []Option) string {
	if g.UseAI(actor) && g.policy != nil {
		return g.policy.ChooseLabel(g, actor, options)
	}
	return g.interact.QueryLabel(actor, options)
}

// Resolve runs the interactive decision loop for actor and returns the
// narrative of what happened. Cancellation, missing candidates and
// unaffordable costs re-present the same decision. Resolve returns an empty
// string as soon as the exit flag is set.
func (g *Game) Resolve(ctx context.Context, actor *entity.Character, allowCharacterActions bool) string {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.turn")
	span.SetAttributes(
		attribute.String("actor", actor.Name),
		attribute.Int("party", g.PartyOf(actor)),
		attribute.Bool("ai", g.UseAI(actor)),
	)
	defer span.End()

	logger := g.logger.With(zap.String("actor", actor.Name), zap.String("actor_id", actor.ID))

	for attempt := 1; ; attempt++ {
		if g.Exiting() {
			span.SetAttributes(attribute.Bool("interrupted", true))
			return ""
		}
		if g.UseAI(actor) && attempt > maxPolicyAttempts {
			logger.Warn("ai gave up", zap.Int("attempts", attempt-1))
			return actor.Name + " hesitates."
		}

		label := g.queryLabel(actor, g.Options(actor, allowCharacterActions))
		if g.Exiting() {
			span.SetAttributes(attribute.Bool("interrupted", true))
			return ""
		}

		if label == Cancel {
			logger.Debug("retry", zap.String("reason", "cancel"))
			continue
		}

		if a := g.gameAction(actor, label); a != nil {
			retry := false
			out := a.Handler(ctx, g, actor, &retry)
			if retry {
				logger.Debug("retry", zap.String("reason", "game action"), zap.String("action", label), zap.String("text", out))
				continue
			}
			span.SetAttributes(attribute.String("action", label))
			return out
		}

		if !allowCharacterActions {
			continue
		}
		if _, ok := actor.Action(label); !ok {
			logger.Debug("retry", zap.String("reason", "unknown label"), zap.String("action", label))
			continue
		}
		if cost, short := actor.Shortfall(label); short {
			logger.Debug("retry", zap.String("reason", "cost"), zap.String("action", label))
			g.interact.Log(entity.InsufficientMessage(actor, cost))
			continue
		}

		targets, ok := g.Candidates(actor, label)
		if !ok {
			logger.Debug("retry", zap.String("reason", "no candidates"), zap.String("action", label))
			continue
		}

		g.interact.Announce(actor, label, targets)
		out := actor.Perform(label, targets)

		span.SetAttributes(
			attribute.String("action", label),
			attribute.Int("targets", len(targets)),
			attribute.Int("attempts", attempt),
		)
		logger.Info("action resolved",
			zap.String("action", label),
			zap.Int("targets", len(targets)),
		)
		return out
	}
}
