package artifacts

// Kind names one persisted artifact of a trained bundle
type Kind string

const (
	KindYieldModel          Kind = "yield_model"
	KindRecommendationModel Kind = "recommendation_model"
	KindScaler              Kind = "scaler"
	KindCropEncoder         Kind = "crop_encoder"
	KindStateEncoder        Kind = "state_encoder"
	KindDistrictEncoder     Kind = "district_encoder"
)

// StatsFileName is the JSON statistics file written next to the binary artifacts
const StatsFileName = "training_stats.json"

// ArtifactSchema describes how an artifact is stored
type ArtifactSchema struct {
	Kind          Kind
	FileName      string
	SchemaVersion string
}

// Registry lists every binary artifact of a bundle in persistence order
var Registry = []ArtifactSchema{
	{Kind: KindYieldModel, FileName: "yield_model.gob", SchemaVersion: "1"},
	{Kind: KindRecommendationModel, FileName: "recommendation_model.gob", SchemaVersion: "1"},
	{Kind: KindScaler, FileName: "scaler.gob", SchemaVersion: "1"},
	{Kind: KindCropEncoder, FileName: "crop_encoder.gob", SchemaVersion: "1"},
	{Kind: KindStateEncoder, FileName: "state_encoder.gob", SchemaVersion: "1"},
	{Kind: KindDistrictEncoder, FileName: "district_encoder.gob", SchemaVersion: "1"},
}

// Schema returns the registry entry for kind
func Schema(kind Kind) (ArtifactSchema, bool) {
	for _, s := range Registry {
		if s.Kind == kind {
			return s, true
		}
	}
	return ArtifactSchema{}, false
}
