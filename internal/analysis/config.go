package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
)

// ParamsOverlay is the JSON file form of Params. Every field is a pointer so
// a partial file only overrides what it names; omitted fields keep the
// defaults.
type ParamsOverlay struct {
	MinVotes          *int               `json:"min_votes,omitempty"`
	MinGroup          *int               `json:"min_group,omitempty"`
	MinFranchiseGroup *int               `json:"min_franchise_group,omitempty"`
	Window            *dataset.YearRange `json:"window,omitempty"`
	Recent            *dataset.YearRange `json:"recent,omitempty"`
	TopOutliers       *int               `json:"top_outliers,omitempty"`
}

// LoadParamsOverlay reads a partial parameter file.
func LoadParamsOverlay(path string) (*ParamsOverlay, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("params file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}

	overlay := &ParamsOverlay{}
	if err := json.Unmarshal(data, overlay); err != nil {
		return nil, fmt.Errorf("failed to parse params JSON: %w", err)
	}
	return overlay, nil
}

// Apply overlays the set fields onto base and validates the result.
func (o *ParamsOverlay) Apply(base Params) (Params, error) {
	if o == nil {
		return base, nil
	}
	if o.MinVotes != nil {
		base.MinVotes = *o.MinVotes
	}
	if o.MinGroup != nil {
		base.MinGroup = *o.MinGroup
	}
	if o.MinFranchiseGroup != nil {
		base.MinFranchiseGroup = *o.MinFranchiseGroup
	}
	if o.Window != nil {
		base.Window = *o.Window
	}
	if o.Recent != nil {
		base.Recent = *o.Recent
	}
	if o.TopOutliers != nil {
		base.TopOutliers = *o.TopOutliers
	}

	if base.MinVotes < 0 || base.MinGroup < 2 || base.MinFranchiseGroup < 2 || base.TopOutliers < 1 {
		return Params{}, fmt.Errorf("invalid parameters: min_votes=%d min_group=%d min_franchise_group=%d top_outliers=%d",
			base.MinVotes, base.MinGroup, base.MinFranchiseGroup, base.TopOutliers)
	}
	if err := base.Window.Validate(); err != nil {
		return Params{}, fmt.Errorf("invalid window: %w", err)
	}
	if err := base.Recent.Validate(); err != nil {
		return Params{}, fmt.Errorf("invalid recent range: %w", err)
	}
	return base, nil
}
