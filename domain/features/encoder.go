// Package features turns samples into scaled numeric vectors and back.
package features

import (
	"fmt"

	"agrismart/domain/core"
	"agrismart/domain/dataset"
)

// Columns lists the scaled feature columns in order. The classifier sees
// everything after the crop code; the yield regressor sees all of them.
var Columns = []string{
	"crop_encoded",
	"state_encoded",
	"district_encoded",
	"temperature",
	"humidity",
	"rainfall",
	"ph",
	"nitrogen",
	"phosphorus",
	"potassium",
}

// LocationColumns are the nine columns used for crop recommendation
func LocationColumns() []string {
	return Columns[1:]
}

// Encoder bundles the categorical encoders with the fitted scaler
type Encoder struct {
	Crop     *LabelEncoder
	State    *LabelEncoder
	District *LabelEncoder
	Scaler   *Scaler
}

// Fit learns the categorical codes and the scaling statistics from the full dataset
func Fit(ds *dataset.Dataset) (*Encoder, error) {
	crop, err := FitLabelEncoder(dataset.ColumnCrop, ds.Column(dataset.ColumnCrop))
	if err != nil {
		return nil, err
	}
	state, err := FitLabelEncoder(dataset.ColumnState, ds.Column(dataset.ColumnState))
	if err != nil {
		return nil, err
	}
	district, err := FitLabelEncoder(dataset.ColumnDistrict, ds.Column(dataset.ColumnDistrict))
	if err != nil {
		return nil, err
	}

	enc := &Encoder{Crop: crop, State: state, District: district}
	raw := make([][]float64, ds.Len())
	for i, r := range ds.Records {
		row, err := enc.raw(r.Sample, true)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		raw[i] = row
	}

	scaler, err := FitScaler(raw)
	if err != nil {
		return nil, err
	}
	enc.Scaler = scaler
	return enc, nil
}

// raw builds the unscaled row. With includeCrop false the crop slot is filled
// with the column mean so it scales to zero and the crop name is never looked up.
func (e *Encoder) raw(s dataset.Sample, includeCrop bool) ([]float64, error) {
	row := make([]float64, 0, len(Columns))

	if includeCrop {
		code, err := e.Crop.Encode(s.Crop)
		if err != nil {
			return nil, err
		}
		row = append(row, float64(code))
	} else {
		row = append(row, e.Scaler.Mean[0])
	}

	state, err := e.State.Encode(s.State)
	if err != nil {
		return nil, err
	}
	district, err := e.District.Encode(s.District)
	if err != nil {
		return nil, err
	}
	row = append(row, float64(state), float64(district))
	return append(row, s.Measurements()...), nil
}

// Encode returns the nine scaled location and measurement features; the crop is ignored
func (e *Encoder) Encode(s dataset.Sample) ([]float64, error) {
	row, err := e.raw(s, false)
	if err != nil {
		return nil, err
	}
	scaled, err := e.Scaler.Transform(row)
	if err != nil {
		return nil, err
	}
	return scaled[1:], nil
}

// EncodeWithCrop returns all ten scaled features, crop code first
func (e *Encoder) EncodeWithCrop(s dataset.Sample) ([]float64, error) {
	row, err := e.raw(s, true)
	if err != nil {
		return nil, err
	}
	return e.Scaler.Transform(row)
}

// EncodeForYield is EncodeWithCrop for inference: a crop the encoder has not
// seen takes the crop column mean, which scales to zero, instead of failing.
// Unseen states and districts are still errors.
func (e *Encoder) EncodeForYield(s dataset.Sample) ([]float64, error) {
	if _, err := e.Crop.Encode(s.Crop); err != nil {
		if !core.IsUnknownCategory(err) {
			return nil, err
		}
		row, err := e.raw(s, false)
		if err != nil {
			return nil, err
		}
		return e.Scaler.Transform(row)
	}
	return e.EncodeWithCrop(s)
}

// DecodeCrop maps a classifier output code back to the crop name
func (e *Encoder) DecodeCrop(code int) (string, error) {
	return e.Crop.Decode(code)
}

// Matrices is a fully encoded dataset
type Matrices struct {
	YieldX    [][]float64
	Yields    []float64
	CropX     [][]float64
	CropCodes []int
}

// TransformDataset encodes every record for both models
func (e *Encoder) TransformDataset(ds *dataset.Dataset) (*Matrices, error) {
	m := &Matrices{
		YieldX:    make([][]float64, ds.Len()),
		Yields:    ds.Yields(),
		CropX:     make([][]float64, ds.Len()),
		CropCodes: make([]int, ds.Len()),
	}
	for i, r := range ds.Records {
		full, err := e.EncodeWithCrop(r.Sample)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		code, err := e.Crop.Encode(r.Crop)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		m.YieldX[i] = full
		m.CropX[i] = full[1:]
		m.CropCodes[i] = code
	}
	return m, nil
}
