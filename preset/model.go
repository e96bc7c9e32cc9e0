package preset

import "errors"

// SubPreset is a single canned editing instruction.
type SubPreset struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Instruction string `json:"instruction"`
}

// Category groups related sub-presets under one icon in the picker.
type Category struct {
	ID         string      `json:"id"`
	Label      string      `json:"label"`
	Icon       string      `json:"icon"`
	SubPresets []SubPreset `json:"subPresets"`
}

// Catalog is the full taxonomy plus the MRU list served to the page.
type Catalog struct {
	Categories   []Category `json:"categories"`
	RecentlyUsed []string   `json:"recentlyUsed"` // MRU order, max 10 IDs
}

var ErrNotFound = errors.New("preset not found")
