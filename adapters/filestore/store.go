// Package filestore persists trained bundles as gob files plus a JSON
// statistics document in one directory.
//
// Every file is written to a temporary name and renamed into place. The set
// as a whole is not atomic: the statistics file is written last and records a
// sha256 fingerprint per artifact, so a partially replaced set is detected on
// load and reported as a missing artifact.
package filestore

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"agrismart/domain/artifacts"
	"agrismart/domain/core"
	"agrismart/domain/features"
	"agrismart/internal"
	apperrors "agrismart/internal/errors"

	json "github.com/goccy/go-json"
)

// Store implements ports.ArtifactStore on the local filesystem
type Store struct {
	dir    string
	logger *internal.Logger
}

// New creates a store rooted at dir. The directory is created on first save.
func New(dir string, logger *internal.Logger) *Store {
	if logger == nil {
		logger = internal.Discard()
	}
	return &Store{dir: dir, logger: logger.With("filestore")}
}

// Dir is the artifact directory
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// payloads maps each registry kind to the value persisted for it
func payloads(b *artifacts.Bundle) (map[artifacts.Kind]interface{}, error) {
	if b == nil || b.YieldModel == nil || b.CropModel == nil || b.Encoder == nil {
		return nil, fmt.Errorf("%w: incomplete bundle", core.ErrNotFitted)
	}
	enc := b.Encoder
	if enc.Scaler == nil || enc.Crop == nil || enc.State == nil || enc.District == nil {
		return nil, fmt.Errorf("%w: encoder is not fitted", core.ErrNotFitted)
	}
	yield, crop := b.YieldModel, b.CropModel
	return map[artifacts.Kind]interface{}{
		artifacts.KindYieldModel:          &yield,
		artifacts.KindRecommendationModel: &crop,
		artifacts.KindScaler:              enc.Scaler,
		artifacts.KindCropEncoder:         enc.Crop,
		artifacts.KindStateEncoder:        enc.State,
		artifacts.KindDistrictEncoder:     enc.District,
	}, nil
}

// Save encodes the whole bundle in memory first so an encoding failure leaves
// the directory untouched, then replaces each file.
func (s *Store) Save(ctx context.Context, b *artifacts.Bundle) (map[string]core.Hash, error) {
	values, err := payloads(b)
	if err != nil {
		return nil, err
	}

	encoded := make(map[string][]byte, len(artifacts.Registry))
	fingerprints := make(map[string]core.Hash, len(artifacts.Registry))
	for _, schema := range artifacts.Registry {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(values[schema.Kind]); err != nil {
			return nil, fmt.Errorf("encode %s: %w", schema.Kind, err)
		}
		encoded[schema.FileName] = buf.Bytes()
		fingerprints[schema.FileName] = core.NewHash(buf.Bytes())
	}

	stats := b.Stats
	stats.Fingerprints = fingerprints
	statsData, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode training stats: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	for _, schema := range artifacts.Registry {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.writeFile(schema.FileName, encoded[schema.FileName]); err != nil {
			return nil, err
		}
	}
	if err := s.writeFile(artifacts.StatsFileName, statsData); err != nil {
		return nil, err
	}

	s.logger.Info("saved %d artifacts to %s", len(artifacts.Registry)+1, s.dir)
	return fingerprints, nil
}

func (s *Store) writeFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

// LoadStats reads training_stats.json
func (s *Store) LoadStats(ctx context.Context) (*artifacts.TrainingStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(artifacts.StatsFileName))
	if err != nil {
		return nil, apperrors.MissingArtifact(artifacts.StatsFileName, err)
	}
	var stats artifacts.TrainingStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, apperrors.MissingArtifact(artifacts.StatsFileName, err)
	}
	return &stats, nil
}

// Load restores the bundle. Absent, corrupt or mismatched files all surface
// as core.ErrMissingArtifact.
func (s *Store) Load(ctx context.Context) (*artifacts.Bundle, error) {
	stats, err := s.LoadStats(ctx)
	if err != nil {
		return nil, err
	}

	raw := make(map[artifacts.Kind][]byte, len(artifacts.Registry))
	for _, schema := range artifacts.Registry {
		data, err := os.ReadFile(s.path(schema.FileName))
		if err != nil {
			return nil, apperrors.MissingArtifact(schema.FileName, err)
		}
		if want := stats.Fingerprints[schema.FileName]; !want.IsEmpty() && !want.Equals(core.NewHash(data)) {
			return nil, apperrors.MissingArtifact(schema.FileName, core.ErrArtifactMismatch)
		}
		raw[schema.Kind] = data
	}

	var (
		yield    artifacts.YieldModel
		crop     artifacts.CropModel
		scaler   features.Scaler
		cropEnc  features.LabelEncoder
		stateEnc features.LabelEncoder
		distEnc  features.LabelEncoder
	)
	targets := map[artifacts.Kind]interface{}{
		artifacts.KindYieldModel:          &yield,
		artifacts.KindRecommendationModel: &crop,
		artifacts.KindScaler:              &scaler,
		artifacts.KindCropEncoder:         &cropEnc,
		artifacts.KindStateEncoder:        &stateEnc,
		artifacts.KindDistrictEncoder:     &distEnc,
	}
	for _, schema := range artifacts.Registry {
		if err := gob.NewDecoder(bytes.NewReader(raw[schema.Kind])).Decode(targets[schema.Kind]); err != nil {
			return nil, apperrors.MissingArtifact(schema.FileName, err)
		}
	}

	if yield == nil || yield.NumTrees() == 0 {
		return nil, apperrors.MissingArtifact(artifacts.Registry[0].FileName, core.ErrNotFitted)
	}
	if crop == nil || len(crop.Classes()) == 0 {
		return nil, apperrors.MissingArtifact(artifacts.Registry[1].FileName, core.ErrNotFitted)
	}
	if scaler.Width() != len(features.Columns) {
		return nil, apperrors.MissingArtifact(artifacts.Registry[2].FileName,
			fmt.Errorf("scaler has %d columns, want %d", scaler.Width(), len(features.Columns)))
	}

	s.logger.Debug("loaded artifacts from %s (run %s)", s.dir, stats.RunID)
	return &artifacts.Bundle{
		YieldModel: yield,
		CropModel:  crop,
		Encoder: &features.Encoder{
			Crop:     &cropEnc,
			State:    &stateEnc,
			District: &distEnc,
			Scaler:   &scaler,
		},
		Stats: *stats,
	}, nil
}

// Exists reports which artifact files are present
func (s *Store) Exists(ctx context.Context) (map[string]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(artifacts.Registry)+1)
	for _, schema := range artifacts.Registry {
		names = append(names, schema.FileName)
	}
	names = append(names, artifacts.StatsFileName)

	present := make(map[string]bool, len(names))
	for _, name := range names {
		_, err := os.Stat(s.path(name))
		switch {
		case err == nil:
			present[name] = true
		case os.IsNotExist(err):
			present[name] = false
		default:
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
	}
	return present, nil
}
