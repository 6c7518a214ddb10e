package ports

import (
	"context"

	"agrismart/domain/artifacts"
	"agrismart/domain/core"
)

// ArtifactStore persists and restores trained bundles
type ArtifactStore interface {
	// Save writes every artifact of the bundle, replacing any previous set, and
	// returns the fingerprint of each written file
	Save(ctx context.Context, bundle *artifacts.Bundle) (map[string]core.Hash, error)
	// Load restores a bundle. A missing or unreadable artifact yields core.ErrMissingArtifact.
	Load(ctx context.Context) (*artifacts.Bundle, error)
	// LoadStats reads only the training statistics
	LoadStats(ctx context.Context) (*artifacts.TrainingStats, error)
	// Exists reports which artifact files are present
	Exists(ctx context.Context) (map[string]bool, error)
	// Dir is the artifact directory
	Dir() string
}
