// Package session wires the terminal, the animation engine, the interactor,
// the AI policy and the game together, and persists whole-game state.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/skirmish/internal/ai"
	"github.com/samdwyer/skirmish/internal/anim"
	"github.com/samdwyer/skirmish/internal/config"
	"github.com/samdwyer/skirmish/internal/game"
	"github.com/samdwyer/skirmish/internal/interact"
	"github.com/samdwyer/skirmish/internal/rules"
	"github.com/samdwyer/skirmish/internal/telemetry"
	"github.com/samdwyer/skirmish/internal/ui"
)

// Session is one interactive run of the game on a terminal.
type Session struct {
	cfg    config.Config
	logger *zap.Logger

	screen *ui.Screen
	canvas *ui.Canvas
	engine *anim.Engine
	term   *interact.Terminal
	game   *game.Game

	closeOnce sync.Once
}

// New builds a session drawing on s. The screen is initialised here and
// finalised by Close. When cfg.Save.Path names an existing file the game and
// its log are restored from it.
func New(cfg config.Config, s tcell.Screen, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	rs, err := rules.New(cfg.Game.Rules, rng)
	if err != nil {
		return nil, err
	}
	palette, err := ui.NewPalette(cfg.UI.HPColor, cfg.UI.MPColor)
	if err != nil {
		return nil, err
	}

	screen, err := ui.Wrap(s)
	if err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	cols, lines := screen.Size()
	canvas := ui.NewCanvas(screen, lines, cols)

	engine := anim.NewEngine(canvas, anim.EngineConfig{Floor: cfg.Animation.Floor}, logger.Named("anim"))
	term := interact.NewTerminal(canvas, screen, engine, interact.Config{
		AnnounceDelay: cfg.Animation.AnnounceDelay,
		SettleDelay:   cfg.Animation.SettleDelay,
		Palette:       palette,
	}, logger.Named("interact"))

	policy := ai.NewRandom(rand.New(rand.NewSource(rng.Int63())))
	g := game.New(rs, rng, term, policy, logger.Named("game"), game.Config{
		Parties:   cfg.Game.Parties,
		PartySize: cfg.Game.PartySize,
		Points:    cfg.Game.Points,
	})
	term.Bind(g)
	term.OnResize(func() {
		cols, lines := screen.Size()
		canvas.Resize(lines, cols)
		screen.Sync()
	})

	sess := &Session{
		cfg:    cfg,
		logger: logger,
		screen: screen,
		canvas: canvas,
		engine: engine,
		term:   term,
		game:   g,
	}

	if cfg.Save.Path != "" {
		doc, err := ReadFile(cfg.Save.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Info("no save found", zap.String("path", cfg.Save.Path))
		case err != nil:
			sess.Close()
			return nil, fmt.Errorf("loading %s: %w", cfg.Save.Path, err)
		default:
			if err := sess.Restore(doc); err != nil {
				sess.Close()
				return nil, fmt.Errorf("restoring %s: %w", cfg.Save.Path, err)
			}
			logger.Info("save loaded", zap.String("path", cfg.Save.Path), zap.Int("parties", len(g.Parties)))
		}
	}

	logger.Info("session created",
		zap.String("rules", rs.Name()),
		zap.Int64("seed", seed),
		zap.Int("lines", lines),
		zap.Int("cols", cols),
	)
	return sess, nil
}

// Game returns the game being played.
func (s *Session) Game() *game.Game {
	return s.game
}

// Terminal returns the interactor.
func (s *Session) Terminal() *interact.Terminal {
	return s.term
}

// Run starts the animation worker and plays until the game reaches exit or
// defeat. When a save path is configured the game is saved afterwards, or the
// save is removed after a defeat so the next launch starts fresh.
func (s *Session) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("session")
	ctx, span := tracer.Start(ctx, "session.run")
	defer span.End()

	s.engine.Start()
	s.logger.Info("session started")

	err := s.game.Run(ctx)
	phase := s.game.Phase()
	span.SetAttributes(attribute.String("phase", phase.String()))
	if err != nil {
		span.RecordError(err)
		s.logger.Error("game loop failed", zap.Error(err))
	}

	if saveErr := s.persist(phase); saveErr != nil {
		span.RecordError(saveErr)
		err = errors.Join(err, saveErr)
	}

	s.logger.Info("session finished",
		zap.Stringer("phase", phase),
		zap.Bool("interrupted", s.term.Interrupted()),
		zap.Int("log_entries", s.term.Logbook().Len()),
	)
	return err
}

// persist writes the save for phase, or removes it when the player lost.
func (s *Session) persist(phase game.Phase) error {
	path := s.cfg.Save.Path
	if path == "" {
		return nil
	}

	if phase == game.PhaseDefeat {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", path, err)
		}
		s.logger.Info("save removed after defeat", zap.String("path", path))
		return nil
	}

	if err := WriteFile(path, s.Snapshot()); err != nil {
		return err
	}
	s.logger.Info("game saved", zap.String("path", path))
	return nil
}

// Snapshot captures the whole game state.
func (s *Session) Snapshot() Document {
	gs := s.game.Snapshot()
	is := s.term.Snapshot()
	return Document{Game: &gs, Interaction: &is}
}

// Restore replaces the game and log with those in doc.
func (s *Session) Restore(doc Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := s.game.Restore(*doc.Game); err != nil {
		return err
	}
	s.term.Restore(*doc.Interaction)
	return nil
}

// Close stops the animation engine and restores the terminal. It is safe to
// call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.engine.Stop()
		s.screen.Close()
		stats := s.engine.Stats()
		s.logger.Info("session closed",
			zap.Uint64("animators_added", stats.Added),
			zap.Uint64("animators_released", stats.Released),
		)
	})
}
