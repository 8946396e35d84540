package game

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/entity"
	"github.com/samdwyer/skirmish/internal/rules"
)

// Handler performs a game-level action. Setting *retry re-presents the menu
// and discards the returned text; a handler that wants a retry narrated logs
// it itself.
type Handler func(ctx context.Context, g *Game, actor *entity.Character, retry *bool) string

// Action is a game-level menu entry offered alongside character actions.
type Action struct {
	Name string
	// Available reports whether the action is offered to actor right now.
	// A nil Available means always.
	Available func(g *Game, actor *entity.Character) bool
	Handler   Handler
}

// defaultActions returns the game-level actions in menu order.
func defaultActions() []*Action {
	return []*Action{
		{Name: "Fight", Available: inMenu, Handler: fight},
		{Name: "Inspect", Handler: inspect},
		{Name: "Item/Potion", Available: hasPotion, Handler: drinkPotion},
		{Name: "Quit/No", Handler: ignore},
		{Name: "Quit/Yes", Handler: quit},
	}
}

// availableActions returns the game-level actions offered to actor. The AI
// gets none.
func (g *Game) availableActions(actor *entity.Character) []*Action {
	if g.UseAI(actor) {
		return nil
	}
	var out []*Action
	for _, a := range g.actions {
		if a.Available == nil || a.Available(g, actor) {
			out = append(out, a)
		}
	}
	return out
}

// gameAction returns the game-level action named label if actor may use it.
func (g *Game) gameAction(actor *entity.Character, label string) *Action {
	for _, a := range g.availableActions(actor) {
		if a.Name == label {
			return a
		}
	}
	return nil
}

func inMenu(g *Game, _ *entity.Character) bool {
	return g.Phase() == PhaseMenu
}

func hasPotion(g *Game, actor *entity.Character) bool {
	pi := g.PartyOf(actor)
	return pi >= 0 && g.Parties[pi].Inventory[rules.PotionItem] > 0
}

func fight(_ context.Context, g *Game, _ *entity.Character, retry *bool) string {
	*retry = false
	p := g.rules.GenerateParty(g.cfg.PartySize, g.cfg.Points)
	g.Parties = append(g.Parties, p)
	g.logger.Info("party generated", zap.String("party", p.Name), zap.Int("members", p.Len()))
	return "A new party appeared!"
}

func inspect(_ context.Context, g *Game, actor *entity.Character, retry *bool) string {
	*retry = true
	g.interact.Display("Status", StatusText(actor))
	return "Let's see..."
}

func drinkPotion(_ context.Context, g *Game, actor *entity.Character, retry *bool) string {
	pi := g.PartyOf(actor)
	if pi < 0 {
		*retry = true
		return ""
	}
	msg, ok := rules.DrinkPotion(g.Parties[pi], actor)
	if !ok {
		g.interact.Log(msg)
	}
	*retry = !ok
	return msg
}

func ignore(_ context.Context, _ *Game, _ *entity.Character, retry *bool) string {
	*retry = true
	return "Scratch that."
}

func quit(_ context.Context, g *Game, _ *entity.Character, retry *bool) string {
	g.RequestExit()
	*retry = false
	return "Quit."
}

// StatusText lists the actor's attributes one per line.
func StatusText(c *entity.Character) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", c.Name)
	for _, attr := range c.Attributes() {
		fmt.Fprintf(&b, "%s: %d\n", attr, c.Get(attr))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
