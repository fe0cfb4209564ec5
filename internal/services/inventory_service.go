package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"kirana_stock/internal/catalog"
	"kirana_stock/internal/csvcodec"
	"kirana_stock/internal/models"
	"kirana_stock/pkg/remotesave"
)

// RemoteSaver pushes the whole catalog to the save-inventory endpoint.
type RemoteSaver interface {
	SaveInventory(ctx context.Context, items []models.Item) (*remotesave.SaveResponse, error)
}

type InventoryService interface {
	CreateItem(input models.ItemInput) (*models.Item, error)
	UpdateItem(id int64, patch models.ItemPatch) (*models.Item, bool)
	ListItems(filter catalog.Filter) []catalog.Row
	GetAllItems() []models.Item
	ExportCSV(filter catalog.Filter) string
	ExportXLSX(filter catalog.Filter) (*excelize.File, error)
	ImportCSV(text string) (*csvcodec.Result, error)
	SaveToRemote(ctx context.Context) (*remotesave.SaveResponse, error)
}

type inventoryService struct {
	store  *catalog.Store
	remote RemoteSaver
	logger *zap.Logger
}

func NewInventoryService(store *catalog.Store, remote RemoteSaver, logger *zap.Logger) InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &inventoryService{store: store, remote: remote, logger: logger}
}

// CreateItem returns catalog.FieldErrors when the input is rejected.
func (s *inventoryService) CreateItem(input models.ItemInput) (*models.Item, error) {
	item, errs := s.store.Create(input)
	if errs != nil {
		s.logger.Debug("Rejected new item", zap.Any("fields", errs.Messages()))
		return nil, errs
	}
	s.logger.Info("Item added", zap.Int64("id", item.ID), zap.String("item_name", item.ItemName))
	return &item, nil
}

func (s *inventoryService) UpdateItem(id int64, patch models.ItemPatch) (*models.Item, bool) {
	item, ok := s.store.Update(id, patch)
	if !ok {
		s.logger.Debug("Ignoring update for unknown item", zap.Int64("id", id))
		return nil, false
	}
	return &item, true
}

func (s *inventoryService) ListItems(filter catalog.Filter) []catalog.Row {
	return catalog.Rows(catalog.Apply(s.store.Snapshot(), filter))
}

func (s *inventoryService) GetAllItems() []models.Item {
	return s.store.Snapshot()
}

// ExportCSV encodes the same filtered, sorted view the list shows.
func (s *inventoryService) ExportCSV(filter catalog.Filter) string {
	return csvcodec.Encode(catalog.Apply(s.store.Snapshot(), filter))
}

func (s *inventoryService) ExportXLSX(filter catalog.Filter) (*excelize.File, error) {
	return buildWorkbook(catalog.Apply(s.store.Snapshot(), filter))
}

// ImportCSV replaces the whole catalog with the accepted rows, even when
// there are none. Whole-file failures leave the catalog untouched.
func (s *inventoryService) ImportCSV(text string) (*csvcodec.Result, error) {
	res, err := csvcodec.Decode(text, s.store.NextID)
	if err != nil {
		s.logger.Warn("CSV import rejected", zap.Error(err))
		return nil, err
	}
	s.store.ReplaceAll(res.Items)
	s.logger.Info("CSV import finished", zap.Int("accepted", res.Accepted), zap.Int("skipped", res.Skipped))
	return res, nil
}

// SaveToRemote is best effort: a failure leaves local state as it was.
func (s *inventoryService) SaveToRemote(ctx context.Context) (*remotesave.SaveResponse, error) {
	if s.remote == nil {
		return nil, fmt.Errorf("remote save is not configured")
	}
	items := s.store.Snapshot()
	resp, err := s.remote.SaveInventory(ctx, items)
	if err != nil {
		s.logger.Warn("Remote save failed", zap.Error(err), zap.Int("items", len(items)))
		return nil, err
	}
	s.logger.Info("Remote save succeeded", zap.Int("items", len(items)))
	return resp, nil
}
