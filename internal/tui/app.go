package tui

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"

	"github.com/jask/shenzhen/internal/config"
	"github.com/jask/shenzhen/internal/game"
	"github.com/jask/shenzhen/internal/keys"
	"github.com/jask/shenzhen/internal/solitaire"
)

// History records dealt games. *service.HistoryService satisfies it.
type History interface {
	Start(ctx context.Context, id string, seed uint64) error
	Won(ctx context.Context, id string, moves int) error
	Abandon(ctx context.Context, id string, moves, remaining int) error
}

// Deps are the collaborators of the App. Only Keys is required.
type Deps struct {
	Keys    *keys.Registry
	History History
	Log     *slog.Logger
	// Seed deals the first board; 0 draws one from Seeds.
	Seed  uint64
	Seeds func() uint64
	Now   func() time.Time
}

// App is the bubbletea model. Every key and tick is handled on the program's
// single update loop, so the board and selection need no locking.
type App struct {
	ctx     context.Context
	cfg     config.Config
	keys    *keys.Registry
	history History
	log     *slog.Logger
	seeds   func() uint64
	now     func() time.Time

	board   *solitaire.Board
	machine *game.Machine
	gameID  string
	seed    uint64
	started time.Time
	ended   time.Time
	moves   int
	won     bool

	// startDone closes once the current game's start record is written.
	startDone chan struct{}

	status string
	width  int
	height int
}

type tickMsg time.Time

type errMsg struct{ error }

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		keys:    deps.Keys,
		history: deps.History,
		log:     deps.Log,
		seeds:   deps.Seeds,
		now:     deps.Now,
	}
	if a.keys == nil {
		a.keys = keys.NewRegistry()
	}
	if a.log == nil {
		a.log = slog.New(slog.DiscardHandler)
	}
	if a.seeds == nil {
		a.seeds = rand.Uint64
	}
	if a.now == nil {
		a.now = time.Now
	}
	seed := deps.Seed
	if seed == 0 {
		seed = a.seeds()
	}
	a.deal(seed)
	return a
}

// deal replaces the board and starts a fresh game record.
func (a *App) deal(seed uint64) {
	a.board = solitaire.NewRandom(seed)
	if a.machine == nil {
		a.machine = game.NewMachine(a.board, a.keys, a.log)
	} else {
		a.machine.Reset(a.board)
	}
	a.gameID = uuid.NewString()
	a.startDone = nil
	a.seed = seed
	a.started = a.now()
	a.ended = time.Time{}
	a.moves = 0
	a.won = false
	a.status = ""
	a.log.Info("deal", "game", a.gameID, "seed", seed, "remaining", a.board.Remaining())
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.tick(), a.startCmd())
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(a.cfg.UI.RedrawInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
	case tickMsg:
		return a, a.tick()
	case errMsg:
		a.status = "error: " + m.Error()
		a.log.Error("history", "err", m.error)
	case tea.KeyMsg:
		return a.handleKey(m.String())
	}
	return a, nil
}

func (a *App) handleKey(k string) (tea.Model, tea.Cmd) {
	a.status = ""
	switch {
	case a.keys.IsAction(k, keys.ActionQuit, keys.ScopeGlobal):
		return a, tea.Sequence(a.abandonCmd(), tea.Quit)
	case a.keys.IsAction(k, keys.ActionNewGame, keys.ScopeGlobal):
		abandon := a.abandonCmd()
		a.deal(a.seeds())
		return a, tea.Sequence(abandon, a.startCmd())
	}

	switch a.machine.HandleKey(k) {
	case game.EventMoved, game.EventCollected:
		a.moves++
		if !a.won && a.machine.Remaining() == 0 {
			a.won = true
			a.ended = a.now()
			a.log.Info("won", "game", a.gameID, "moves", a.moves, "elapsed", a.elapsed().String())
			return a, a.wonCmd()
		}
	}
	return a, nil
}

func (a *App) elapsed() time.Duration {
	if a.won {
		return a.ended.Sub(a.started)
	}
	return a.now().Sub(a.started)
}

func (a *App) View() string {
	width := a.width
	if width <= 0 {
		// No size reported yet: fit the status line rather than cut it.
		msg, _ := a.statusLine()
		width = max(boardWidth, ansi.StringWidth(msg))
	}
	var sb strings.Builder
	sb.WriteString(boardView{board: a.board, sel: a.machine.Selection(), keys: a.keys}.render())
	sb.WriteByte('\n')
	sb.WriteString(a.renderStatusBar(width))
	if a.cfg.UI.ShowHelp {
		sb.WriteByte('\n')
		sb.WriteString(a.renderFooter(width))
	}
	return sb.String()
}

// commands

func (a *App) startCmd() tea.Cmd {
	if a.history == nil {
		return nil
	}
	id, seed := a.gameID, a.seed
	done := make(chan struct{})
	a.startDone = done
	return func() tea.Msg {
		defer close(done)
		if err := a.history.Start(a.ctx, id, seed); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (a *App) wonCmd() tea.Cmd {
	if a.history == nil {
		return nil
	}
	id, moves, started := a.gameID, a.moves, a.startDone
	return func() tea.Msg {
		if err := a.awaitStart(started); err != nil {
			return errMsg{err}
		}
		if err := a.history.Won(a.ctx, id, moves); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// abandonCmd closes the current game unless it was already won.
func (a *App) abandonCmd() tea.Cmd {
	if a.history == nil || a.won {
		return nil
	}
	id, moves, remaining, started := a.gameID, a.moves, a.machine.Remaining(), a.startDone
	return func() tea.Msg {
		if err := a.awaitStart(started); err != nil {
			return errMsg{err}
		}
		if err := a.history.Abandon(a.ctx, id, moves, remaining); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// awaitStart blocks until the start record of a game exists, so a quick quit
// cannot try to finish a row that was never inserted.
func (a *App) awaitStart(done <-chan struct{}) error {
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-a.ctx.Done():
		return a.ctx.Err()
	}
}
