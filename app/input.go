package app

import (
	"fmt"
	"strconv"
	"strings"

	"agrismart/domain/dataset"
	"agrismart/internal/errors"

	"github.com/tidwall/gjson"
)

// DefaultInput holds the value used for every field absent from a request
func DefaultInput() dataset.Sample {
	return dataset.Sample{
		Crop:        "Rice",
		State:       "Punjab",
		District:    "Ludhiana",
		Temperature: 25,
		Humidity:    65,
		Rainfall:    800,
		PH:          6.8,
		Nitrogen:    120,
		Phosphorus:  60,
		Potassium:   80,
	}
}

// ParseInput reads a JSON object into a sample, applying DefaultInput for
// absent or null fields. Numbers may be given as JSON numbers or numeric strings.
func ParseInput(raw string) (dataset.Sample, error) {
	in := DefaultInput()
	if strings.TrimSpace(raw) == "" || !gjson.Valid(raw) {
		return in, errors.MalformedInput("input is not valid JSON")
	}
	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		return in, errors.MalformedInput("input must be a JSON object")
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"crop", &in.Crop},
		{"state", &in.State},
		{"district", &in.District},
		{"soil_type", &in.SoilType},
	}
	for _, f := range strs {
		v := doc.Get(f.key)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if v.Type != gjson.String {
			return in, errors.MalformedInput(fmt.Sprintf("field %q must be a string", f.key))
		}
		*f.dst = v.String()
	}

	nums := []struct {
		key string
		dst *float64
	}{
		{"temperature", &in.Temperature},
		{"humidity", &in.Humidity},
		{"rainfall", &in.Rainfall},
		{"ph", &in.PH},
		{"nitrogen", &in.Nitrogen},
		{"phosphorus", &in.Phosphorus},
		{"potassium", &in.Potassium},
	}
	for _, f := range nums {
		v := doc.Get(f.key)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		switch v.Type {
		case gjson.Number:
			*f.dst = v.Float()
		case gjson.String:
			n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
			if err != nil {
				return in, errors.MalformedInput(fmt.Sprintf("field %q must be numeric, got %q", f.key, v.Str))
			}
			*f.dst = n
		default:
			return in, errors.MalformedInput(fmt.Sprintf("field %q must be numeric", f.key))
		}
	}
	return in, nil
}
