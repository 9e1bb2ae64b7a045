package session

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/inventory/internal/engine"
	"github.com/roach88/inventory/internal/product"
	"github.com/roach88/inventory/internal/prompt"
	"github.com/roach88/inventory/internal/store"
	"github.com/roach88/inventory/internal/testutil"
)

var today = product.NewDate(2024, time.March, 15)

type harness struct {
	store  *store.Store
	out    *bytes.Buffer
	backup string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return &harness{
		store:  s,
		out:    &bytes.Buffer{},
		backup: filepath.Join(dir, "Inventory_backup.csv"),
	}
}

func (h *harness) seed(t *testing.T, name string, price, qty int64, date product.Date) {
	t.Helper()
	_, err := h.store.Create(context.Background(), product.Product{
		Name: name, PriceCents: price, Quantity: qty, LastUpdated: date,
	})
	require.NoError(t, err)
}

// run feeds input to a session and returns its output once input is exhausted.
func (h *harness) run(t *testing.T, input string, clear bool) string {
	t.Helper()
	eng := engine.New(h.store, engine.WithClock(testutil.NewFixedClock(today)))
	p := prompt.New(strings.NewReader(input), h.out, nil)
	defer p.Close()

	s := New(h.store, eng, p, Config{BackupPath: h.backup, ClearScreen: clear})
	require.NoError(t, s.Run(context.Background()))
	return h.out.String()
}

func TestNext(t *testing.T) {
	tests := []struct {
		cmd  string
		want State
		ok   bool
	}{
		{"v", StateView, true},
		{"a", StateAdd, true},
		{"b", StateBackup, true},
		{"q", StateExit, true},
		{" V ", StateView, true},
		{"Q", StateExit, true},
		{"", StateMenu, false},
		{"x", StateMenu, false},
		{"view", StateMenu, false},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			got, ok := Next(tt.cmd)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestRun_QuitShowsMenu(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "q\n", false)

	assert.Contains(t, out, "Enter q to exit.")
	for _, e := range Menu {
		assert.Contains(t, out, e.Key+" "+e.Help)
	}
	assert.Equal(t, 1, strings.Count(out, ActionPrompt))
}

func TestRun_UnknownActionStaysInMenu(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "x\nq\n", false)

	assert.Contains(t, out, MsgUnknownAction)
	assert.Equal(t, 2, strings.Count(out, ActionPrompt))
}

func TestRun_EndOfInputExits(t *testing.T) {
	h := newHarness(t)
	h.run(t, "", false)
}

func TestRun_ConfirmedInterruptExits(t *testing.T) {
	h := newHarness(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	interrupts := make(chan os.Signal, 2)
	interrupts <- os.Interrupt
	interrupts <- os.Interrupt

	p := prompt.New(pr, h.out, interrupts)
	defer p.Close()

	s := New(h.store, engine.New(h.store), p, Config{BackupPath: h.backup})
	assert.NoError(t, s.Run(context.Background()))
	assert.Contains(t, h.out.String(), prompt.ConfirmText)
}

func TestRun_ViewEmptyStore(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "v\nq\n", false)

	assert.Contains(t, out, MsgEmpty)
	assert.NotContains(t, out, prompt.IDPrompt)
}

func TestRun_ViewProduct(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "Widget", 319, 100, product.NewDate(2018, time.August, 19))

	out := h.run(t, "v\n2\n0\n1\nq\n", false)

	assert.Contains(t, out, prompt.MsgIDOutOfRange)
	assert.Contains(t, out, MsgNotFound)
	assert.Contains(t, out, "product name: Widget\n")
	assert.Contains(t, out, "product price: $3.19\n")
	assert.Contains(t, out, "product quantity: 100\n")
	assert.Contains(t, out, "product date updated: 2018-08-19\n")
}

func TestRun_AddNewProduct(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "a\n\nGadget\n4\n4.5\nsome\n7\nq\n", false)

	assert.Contains(t, out, prompt.MsgBlankName)
	assert.Contains(t, out, prompt.MsgMissingCents)
	assert.Contains(t, out, prompt.MsgInvalidQuantity)
	assert.Contains(t, out, `product "Gadget" added`)

	got, err := h.store.Get(context.Background(), "Gadget")
	require.NoError(t, err)
	assert.Equal(t, int64(450), got.PriceCents)
	assert.Equal(t, int64(7), got.Quantity)
	assert.True(t, got.LastUpdated.Equal(today))
}

func TestRun_AddOverwritesSameDayRecord(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "Widget", 319, 100, today)

	out := h.run(t, "a\nWidget\n$5.00\n1\nq\n", false)
	assert.Contains(t, out, `product "Widget" updated`)

	got, err := h.store.Get(context.Background(), "Widget")
	require.NoError(t, err)
	assert.Equal(t, int64(500), got.PriceCents)
	assert.Equal(t, int64(1), got.Quantity)
	assert.Equal(t, int64(1), got.ID)
}

func TestRun_AddKeepsFutureDatedRecord(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "Widget", 319, 100, today.AddDays(1))

	out := h.run(t, "a\nWidget\n5.00\n1\nq\n", false)
	assert.Contains(t, out, `product "Widget" kept`)

	got, err := h.store.Get(context.Background(), "Widget")
	require.NoError(t, err)
	assert.Equal(t, int64(319), got.PriceCents)
}

func TestRun_Backup(t *testing.T) {
	h := newHarness(t)
	h.seed(t, "Widget", 319, 100, product.NewDate(2018, time.August, 19))

	out := h.run(t, "b\nq\n", false)
	assert.Contains(t, out, MsgBackupDone)

	data, err := os.ReadFile(h.backup)
	require.NoError(t, err)
	assert.Equal(t,
		"product_name,product_price,product_quantity,date_updated\nWidget,$3.19,100,2018-08-19\n",
		string(data))
}

func TestRun_BackupFailureReturnsToMenu(t *testing.T) {
	h := newHarness(t)
	h.backup = filepath.Join(t.TempDir(), "missing", "backup.csv")

	out := h.run(t, "b\nq\n", false)
	assert.Contains(t, out, MsgBackupFailed)
	assert.Equal(t, 2, strings.Count(out, ActionPrompt))
}

func TestRun_ClearScreen(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "v\nq\n", true)
	assert.Equal(t, 1, strings.Count(out, clearSequence))

	h = newHarness(t)
	out = h.run(t, "v\nq\n", false)
	assert.NotContains(t, out, clearSequence)
}
