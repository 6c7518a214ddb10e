package features

import (
	"fmt"
	"sort"

	"agrismart/domain/core"
)

// UnknownCategoryError is returned when a categorical value was not present at fit time
type UnknownCategoryError struct {
	Field string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s %q: not seen during training", e.Field, e.Value)
}

func (e *UnknownCategoryError) Unwrap() error {
	return core.ErrUnknownCategory
}

// LabelEncoder maps category names to dense integer codes. Codes follow the
// sorted order of the distinct names seen at fit time.
type LabelEncoder struct {
	Field   string
	Classes []string
	index   map[string]int
}

// FitLabelEncoder builds an encoder from the observed values
func FitLabelEncoder(field string, values []string) (*LabelEncoder, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no %s values to fit", core.ErrInsufficientData, field)
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Strings(classes)
	return NewLabelEncoder(field, classes), nil
}

// NewLabelEncoder rebuilds an encoder from an already sorted class list
func NewLabelEncoder(field string, classes []string) *LabelEncoder {
	e := &LabelEncoder{Field: field, Classes: classes}
	e.reindex()
	return e
}

func (e *LabelEncoder) reindex() {
	e.index = make(map[string]int, len(e.Classes))
	for i, c := range e.Classes {
		e.index[c] = i
	}
}

// Encode returns the code of value
func (e *LabelEncoder) Encode(value string) (int, error) {
	if e.index != nil {
		if code, ok := e.index[value]; ok {
			return code, nil
		}
		return 0, &UnknownCategoryError{Field: e.Field, Value: value}
	}
	// decoded from storage without an index: Classes is sorted
	i := sort.SearchStrings(e.Classes, value)
	if i < len(e.Classes) && e.Classes[i] == value {
		return i, nil
	}
	return 0, &UnknownCategoryError{Field: e.Field, Value: value}
}

// Decode returns the name for code
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.Classes) {
		return "", fmt.Errorf("%s code %d out of range [0,%d)", e.Field, code, len(e.Classes))
	}
	return e.Classes[code], nil
}

// Len returns the number of known classes
func (e *LabelEncoder) Len() int {
	return len(e.Classes)
}
