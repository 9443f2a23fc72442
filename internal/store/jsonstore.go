package store

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/bajakarsa/bilahstore/internal/catalog"
	"github.com/bajakarsa/bilahstore/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TopicProductsChanged is published on the event bus after every
// successful save, with the new collection size as argument.
const TopicProductsChanged = "products.changed"

// ProductStore persists the whole product collection as one JSON file.
// Reads and writes are whole-collection operations; the last writer wins.
// In read-only mode writes land in the in-process cache only and do not
// survive a restart.
type ProductStore struct {
	path     string
	readOnly bool
	bus      EventBus.Bus

	mu     sync.RWMutex
	cache  []domain.UnifiedProduct
	loaded bool
}

func NewProductStore(path string, readOnly bool, bus EventBus.Bus) *ProductStore {
	return &ProductStore{path: path, readOnly: readOnly, bus: bus}
}

// Products returns the stored collection. Records are re-normalized on
// the way out so files written before the unified schema still load.
// A missing file is an empty catalog, not an error.
func (s *ProductStore) Products() ([]domain.UnifiedProduct, error) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		out := make([]domain.UnifiedProduct, len(s.cache))
		copy(out, s.cache)
		return out, nil
	}
	s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []domain.UnifiedProduct{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read products file")
	}

	var raws []domain.RawProduct
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, errors.Wrap(err, "decode products file")
	}

	list := make([]domain.UnifiedProduct, 0, len(raws))
	for _, r := range raws {
		list = append(list, catalog.Normalize(r))
	}

	s.mu.Lock()
	s.cache = list
	s.loaded = true
	s.mu.Unlock()

	out := make([]domain.UnifiedProduct, len(list))
	copy(out, list)
	return out, nil
}

// SaveProducts replaces the stored collection. The file is written to a
// temp sibling and renamed so readers never observe a partial file.
func (s *ProductStore) SaveProducts(list []domain.UnifiedProduct) error {
	s.mu.Lock()
	s.cache = make([]domain.UnifiedProduct, len(list))
	copy(s.cache, list)
	s.loaded = true
	s.mu.Unlock()

	if s.readOnly {
		zap.L().Debug("read-only store, write kept in cache only",
			zap.Int("products", len(list)))
		s.publish(len(list))
		return nil
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode products")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "create data dir")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "write products file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace products file")
	}

	s.publish(len(list))
	return nil
}

func (s *ProductStore) publish(count int) {
	if s.bus != nil {
		s.bus.Publish(TopicProductsChanged, count)
	}
}

// BackupTo writes a point-in-time copy of the collection, used by the
// daily backup job.
func (s *ProductStore) BackupTo(path string) error {
	list, err := s.Products()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode backup")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create backup dir")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write backup")
}
