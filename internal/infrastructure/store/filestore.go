package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/metalscrape/backend/internal/domain"
	"github.com/metalscrape/backend/internal/platform/logger"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	productsSuffix   = ".products.json"
	variationsSuffix = ".variations.json"
)

var titleCaser = cases.Title(language.English)

// FileStore keeps each bundle as a pair of JSON files:
// <material>.<shape>.products.json and <material>.<shape>.variations.json
type FileStore struct {
	dir string
	log *logger.Logger
}

// NewFileStore creates a store rooted at dir
func NewFileStore(dir string, log *logger.Logger) *FileStore {
	return &FileStore{dir: dir, log: log.With("component", "FileStore", "dir", dir)}
}

// FormatFileName lower-cases a category name and replaces spaces with underscores
func FormatFileName(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}

// UnformatFileName reverses FormatFileName, title-casing each word
func UnformatFileName(text string) string {
	return titleCaser.String(strings.ReplaceAll(text, "_", " "))
}

func baseName(key domain.BundleKey) string {
	return FormatFileName(key.Material) + "." + FormatFileName(key.Shape)
}

// Save writes both files of a bundle, creating the directory if needed
func (s *FileStore) Save(ctx context.Context, key domain.BundleKey, bundle *domain.ProductBundle) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	base := filepath.Join(s.dir, baseName(key))
	products := bundle.Products
	if products == nil {
		products = []domain.ProductInfo{}
	}
	variations := bundle.Variations
	if variations == nil {
		variations = []domain.ProductVariation{}
	}

	if err := writeJSON(base+productsSuffix, products); err != nil {
		return err
	}
	if err := writeJSON(base+variationsSuffix, variations); err != nil {
		return err
	}

	s.log.Debug("Saved bundle", "material", key.Material, "shape", key.Shape,
		"products", len(products), "variations", len(variations))
	return nil
}

// Load reads the bundle stored for key
func (s *FileStore) Load(ctx context.Context, key domain.BundleKey) (*domain.ProductBundle, error) {
	return s.loadBase(baseName(key))
}

func (s *FileStore) loadBase(name string) (*domain.ProductBundle, error) {
	productsPath := filepath.Join(s.dir, name+productsSuffix)
	variationsPath := filepath.Join(s.dir, name+variationsSuffix)

	bundle := &domain.ProductBundle{}
	if err := readJSON(productsPath, &bundle.Products); err != nil {
		return nil, err
	}
	if err := readJSON(variationsPath, &bundle.Variations); err != nil {
		return nil, err
	}
	return bundle, nil
}

// LoadAll reads every bundle in the data directory.
// Entries that are not "<material>.<shape>.<type>.json" files are skipped.
func (s *FileStore) LoadAll(ctx context.Context) (map[domain.BundleKey]*domain.ProductBundle, error) {
	names, err := s.productFiles()
	if err != nil {
		return nil, err
	}

	out := make(map[domain.BundleKey]*domain.ProductBundle, len(names))
	for key, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bundle, err := s.loadBase(name)
		if err != nil {
			return nil, err
		}
		out[key] = bundle
	}
	return out, nil
}

// Keys lists the categories that have a products file
func (s *FileStore) Keys(ctx context.Context) ([]domain.BundleKey, error) {
	names, err := s.productFiles()
	if err != nil {
		return nil, err
	}
	keys := make([]domain.BundleKey, 0, len(names))
	for key := range names {
		keys = append(keys, key)
	}
	return keys, nil
}

// productFiles maps each category key to its file base name
func (s *FileStore) productFiles() (map[domain.BundleKey]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	out := make(map[domain.BundleKey]string)
	for _, entry := range entries {
		path := filepath.Join(s.dir, entry.Name())
		if !entry.Type().IsRegular() {
			s.log.Debug("Skipping path: not a file", "path", path)
			continue
		}
		parts := strings.Split(entry.Name(), ".")
		if len(parts) != 4 {
			s.log.Debug("Skipping path: improperly formatted file name", "path", path)
			continue
		}
		material, shape, dataType, ending := parts[0], parts[1], parts[2], parts[3]
		if ending != "json" {
			s.log.Debug("Skipping path: not a JSON file", "path", path)
			continue
		}
		if dataType != "products" {
			continue
		}
		key := domain.BundleKey{Material: UnformatFileName(material), Shape: UnformatFileName(shape)}
		out[key] = material + "." + shape
	}
	return out, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrBundleNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
