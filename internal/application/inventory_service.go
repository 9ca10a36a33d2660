package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdidvp/inventario/internal/domain"
)

// InventoryService validates add requests and forwards them to the product
// store. It keeps no state of its own.
type InventoryService struct {
	store  domain.ProductStore
	source domain.CodeSource
	logger *zap.Logger
}

// NewInventoryService wires the service. source may be nil when no capture
// device is attached; AddFromDevice then fails with a device error.
func NewInventoryService(
	store domain.ProductStore,
	source domain.CodeSource,
	logger *zap.Logger,
) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		store:  store,
		source: source,
		logger: logger,
	}
}

// AddManual records a single typed code.
func (s *InventoryService) AddManual(ctx context.Context, code string) (domain.Batch, error) {
	return s.AddCodes(ctx, code)
}

// AddCodes records every given code as one batch. An empty code rejects the
// whole batch before the store is touched. When the store fails, the batch
// is still returned so callers can report what was lost.
func (s *InventoryService) AddCodes(ctx context.Context, codes ...string) (domain.Batch, error) {
	batch, err := domain.NewBatch(codes...)
	if err != nil {
		return domain.Batch{}, err
	}
	if batch.IsEmpty() {
		return domain.Batch{}, &domain.OpError{Op: "inventory.add", Kind: domain.KindValidation, Err: domain.ErrEmptyCode}
	}
	return batch, s.insert(ctx, "manual", batch)
}

// AddFromDevice captures a batch from the attached device and records it.
// Device failures are not retried.
func (s *InventoryService) AddFromDevice(ctx context.Context) (domain.Batch, error) {
	if s.source == nil {
		return domain.Batch{}, deviceError(domain.ErrNoDevice)
	}

	raw, err := s.source.Capture(ctx)
	if err != nil {
		s.logger.Warn("capture failed", zap.Error(err))
		return domain.Batch{}, deviceError(err)
	}
	if len(raw) == 0 {
		return domain.Batch{}, deviceError(domain.ErrNoCodes)
	}

	batch, err := domain.NewBatch(raw...)
	if err != nil {
		return domain.Batch{}, err
	}
	return batch, s.insert(ctx, "device", batch)
}

// List returns every stored code for display.
func (s *InventoryService) List(ctx context.Context) ([]domain.ProductCode, error) {
	codes, err := s.store.Scan(ctx)
	if err != nil {
		s.logger.Error("listing codes", zap.Error(err))
		return nil, err
	}
	return codes, nil
}

// Count returns the number of stored rows.
func (s *InventoryService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Sell is reserved for a future release.
func (s *InventoryService) Sell(_ context.Context) error {
	return &domain.OpError{Op: "inventory.sell", Kind: domain.KindNotImplemented, Err: domain.ErrNotImplemented}
}

// Configure is reserved for a future release.
func (s *InventoryService) Configure(_ context.Context) error {
	return &domain.OpError{Op: "inventory.configure", Kind: domain.KindNotImplemented, Err: domain.ErrNotImplemented}
}

func (s *InventoryService) insert(ctx context.Context, origin string, batch domain.Batch) error {
	log := s.logger.With(
		zap.String("batch_id", uuid.NewString()),
		zap.String("origin", origin),
		zap.Int("size", batch.Len()),
	)

	if err := s.store.Insert(ctx, batch); err != nil {
		log.Error("insert failed", zap.Strings("codes", batch.Strings()), zap.Error(err))
		var oe *domain.OpError
		if errors.As(err, &oe) {
			return err
		}
		return &domain.OpError{Op: "inventory.add", Kind: domain.KindStorage, Err: err}
	}

	log.Info("codes added", zap.Strings("codes", batch.Strings()))
	return nil
}

func deviceError(err error) error {
	return &domain.OpError{Op: "inventory.capture", Kind: domain.KindDevice, Err: err}
}
