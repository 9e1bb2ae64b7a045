package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/inventory/internal/engine"
	"github.com/roach88/inventory/internal/feed"
	"github.com/roach88/inventory/internal/money"
	"github.com/roach88/inventory/internal/product"
	"github.com/roach88/inventory/internal/prompt"
	"github.com/roach88/inventory/internal/store"
)

// Operator-facing messages.
const (
	ActionPrompt     = "Please enter your action: "
	MsgUnknownAction = "Please enter v, a, or b"
	MsgEmpty         = "inventory is empty"
	MsgNotFound      = "id does not exist"
	MsgBackupDone    = "backup successful!"
	MsgBackupFailed  = "backup failed"
)

// clearSequence moves the cursor home and clears the terminal.
const clearSequence = "\033[H\033[2J"

// Store is the read side of the inventory the session needs.
type Store interface {
	MaxID(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id int64) (product.Product, error)
	ListAll(ctx context.Context) ([]product.Product, error)
}

// Upserter applies interactive entries.
type Upserter interface {
	UpsertInteractive(ctx context.Context, name string, priceCents, quantity int64) (engine.Decision, product.Product, error)
}

// Config holds session settings.
type Config struct {
	BackupPath  string
	ClearScreen bool
}

// Session is one run of the menu loop.
type Session struct {
	store    Store
	engine   Upserter
	prompter *prompt.Prompter
	cfg      Config
	logger   *slog.Logger
}

// New creates a Session. All operator output goes through p.
func New(st Store, eng Upserter, p *prompt.Prompter, cfg Config) *Session {
	return &Session{
		store:    st,
		engine:   eng,
		prompter: p,
		cfg:      cfg,
		logger:   slog.Default(),
	}
}

// Run drives the loop until the operator quits.
//
// A confirmed interrupt and the end of input are normal exits and return nil.
func (s *Session) Run(ctx context.Context) error {
	state := StateMenu
	for state != StateExit {
		var err error
		switch state {
		case StateMenu:
			state, err = s.menu(ctx)
		case StateView:
			err = s.view(ctx)
			state = StateMenu
		case StateAdd:
			err = s.add(ctx)
			state = StateMenu
		case StateBackup:
			err = s.backup(ctx)
			state = StateMenu
		default:
			return fmt.Errorf("unknown session state %d", state)
		}

		if errors.Is(err, prompt.ErrExit) || errors.Is(err, io.EOF) {
			s.logger.Debug("session ended", "reason", err)
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) menu(ctx context.Context) (State, error) {
	s.prompter.Printf("Enter %s to exit.\n", QuitKey)
	for _, e := range Menu {
		s.prompter.Printf("%s %s\n", e.Key, e.Help)
	}

	cmd, err := s.prompter.ReadLine(ctx, ActionPrompt)
	if err != nil {
		return StateMenu, err
	}

	next, ok := Next(cmd)
	if !ok {
		s.prompter.Diagnostic(MsgUnknownAction)
		return StateMenu, nil
	}
	if next != StateExit && s.cfg.ClearScreen {
		s.prompter.Printf("%s", clearSequence)
	}
	return next, nil
}

func (s *Session) view(ctx context.Context) error {
	maxID, err := s.store.MaxID(ctx)
	if err != nil {
		return fmt.Errorf("find max id: %w", err)
	}
	if maxID == 0 {
		s.prompter.Diagnostic(MsgEmpty)
		return nil
	}

	for {
		id, err := s.prompter.ID(ctx, maxID)
		if err != nil {
			return err
		}

		p, err := s.store.GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			s.prompter.Diagnostic(MsgNotFound)
			continue
		}
		if err != nil {
			return fmt.Errorf("get product %d: %w", id, err)
		}

		s.prompter.Printf("product name: %s\n", p.Name)
		s.prompter.Printf("product price: %s\n", money.Format(p.PriceCents))
		s.prompter.Printf("product quantity: %d\n", p.Quantity)
		s.prompter.Printf("product date updated: %s\n\n", p.LastUpdated)
		return nil
	}
}

func (s *Session) add(ctx context.Context) error {
	name, err := s.prompter.Name(ctx)
	if err != nil {
		return err
	}
	price, err := s.prompter.Price(ctx)
	if err != nil {
		return err
	}
	qty, err := s.prompter.Quantity(ctx)
	if err != nil {
		return err
	}

	decision, record, err := s.engine.UpsertInteractive(ctx, name, price, qty)
	if err != nil {
		return err
	}

	switch decision {
	case engine.DecisionInserted:
		s.prompter.Diagnostic(fmt.Sprintf("product %q added", record.Name))
	case engine.DecisionUpdated:
		s.prompter.Diagnostic(fmt.Sprintf("product %q updated", record.Name))
	case engine.DecisionSkipped:
		s.prompter.Diagnostic(fmt.Sprintf("product %q kept: stored record is dated %s", record.Name, record.LastUpdated))
	}
	return nil
}

func (s *Session) backup(ctx context.Context) error {
	products, err := s.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if err := feed.WriteFile(s.cfg.BackupPath, products); err != nil {
		s.logger.Error("backup failed", "path", s.cfg.BackupPath, "error", err)
		s.prompter.Diagnostic(MsgBackupFailed + ": " + err.Error())
		return nil
	}

	s.logger.Info("backup written", "path", s.cfg.BackupPath, "products", len(products))
	s.prompter.Diagnostic(MsgBackupDone)
	return nil
}
