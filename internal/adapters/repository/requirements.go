package repository

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/okian/stagebook/internal/domain/model"
	"github.com/okian/stagebook/pkg/metrics"
)

// RequirementRepository stores the whole requirement collection as one JSON
// array under RequirementsKey.
type RequirementRepository struct {
	kv KV
}

// NewRequirementRepository wraps kv.
func NewRequirementRepository(kv KV) *RequirementRepository {
	return &RequirementRepository{kv: kv}
}

// Load returns the stored collection. An absent key yields an empty
// collection. A value that is not a JSON array of requirements yields
// ErrCorrupt.
func (r *RequirementRepository) Load(ctx context.Context) ([]model.Requirement, error) {
	raw, ok, err := r.kv.Get(ctx, RequirementsKey)
	if err != nil {
		return nil, fmt.Errorf("load requirements: %w", err)
	}
	if !ok || raw == "" {
		return []model.Requirement{}, nil
	}
	items, err := decodeRequirements([]byte(raw))
	if err != nil {
		metrics.RecordStoreLoadCorrupt(RequirementsKey)
		return nil, err
	}
	return items, nil
}

// Save replaces the stored collection.
func (r *RequirementRepository) Save(ctx context.Context, items []model.Requirement) error {
	if items == nil {
		items = []model.Requirement{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode requirements: %w", err)
	}
	if err := r.kv.Set(ctx, RequirementsKey, string(raw)); err != nil {
		return fmt.Errorf("save requirements: %w", err)
	}
	return nil
}

func decodeRequirements(raw []byte) ([]model.Requirement, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s is not a JSON array", ErrCorrupt, RequirementsKey)
	}
	var items []model.Requirement
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, RequirementsKey, err)
	}
	if items == nil {
		items = []model.Requirement{}
	}
	return items, nil
}
