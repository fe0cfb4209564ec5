// Package snapshot persists the whole catalog as a JSON blob in a single
// key-value slot, and restores it at startup.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"kirana_stock/internal/models"
)

const DefaultKey = "kiranaStockItems"

// ErrEmpty is returned by a Slot that holds no data yet.
var ErrEmpty = errors.New("snapshot slot is empty")

// Slot is a single stored value. Implementations return ErrEmpty when nothing
// has been saved.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Load reads the catalog from slot. A missing or unparsable blob yields an
// empty catalog; the returned error says why, for logging only.
func Load(ctx context.Context, slot Slot) ([]models.Item, error) {
	data, err := slot.Load(ctx)
	if err != nil {
		return []models.Item{}, err
	}

	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return []models.Item{}, fmt.Errorf("failed to parse saved items: %w", err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

func Save(ctx context.Context, slot Slot, items []models.Item) error {
	if items == nil {
		items = []models.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	if err := slot.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}

// Persister writes the catalog to its slot every time it changes. Write
// failures are logged and otherwise ignored.
type Persister struct {
	slot    Slot
	logger  *zap.Logger
	timeout time.Duration
}

func NewPersister(slot Slot, logger *zap.Logger, timeout time.Duration) *Persister {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Persister{slot: slot, logger: logger, timeout: timeout}
}

// Restore loads the saved catalog, falling back to an empty one.
func (p *Persister) Restore(ctx context.Context) []models.Item {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	items, err := Load(ctx, p.slot)
	switch {
	case errors.Is(err, ErrEmpty):
		p.logger.Info("No saved inventory found, starting empty")
	case err != nil:
		p.logger.Warn("Ignoring unreadable saved inventory", zap.Error(err))
	default:
		p.logger.Info("Restored saved inventory", zap.Int("items", len(items)))
	}
	return items
}

// Persist matches catalog.ChangeFunc.
func (p *Persister) Persist(items []models.Item) {
	ctx, cancel := p.withTimeout(context.Background())
	defer cancel()

	if err := Save(ctx, p.slot, items); err != nil {
		p.logger.Error("Failed to persist inventory snapshot", zap.Error(err), zap.Int("items", len(items)))
		return
	}
	p.logger.Debug("Persisted inventory snapshot", zap.Int("items", len(items)))
}

func (p *Persister) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}
