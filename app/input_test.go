package app

import (
	"testing"

	"agrismart/domain/core"
	"agrismart/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputDefaults(t *testing.T) {
	in, err := ParseInput(`{}`)
	require.NoError(t, err)
	assert.Equal(t, DefaultInput(), in)
}

func TestParseInputOverrides(t *testing.T) {
	in, err := ParseInput(`{"crop":"Wheat","state":"Bihar","temperature":31.5,"ph":"7.2","nitrogen":null,"extra":true}`)
	require.NoError(t, err)

	assert.Equal(t, "Wheat", in.Crop)
	assert.Equal(t, "Bihar", in.State)
	assert.Equal(t, "Ludhiana", in.District)
	assert.Equal(t, 31.5, in.Temperature)
	assert.Equal(t, 7.2, in.PH)
	assert.Equal(t, 120.0, in.Nitrogen)
}

func TestParseInputRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":         `{"state":`,
		"empty":            ``,
		"array":            `[1,2]`,
		"numeric state":    `{"state": 5}`,
		"word temperature": `{"temperature": "hot"}`,
		"bool rainfall":    `{"rainfall": true}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseInput(raw)
			require.Error(t, err)
			assert.Equal(t, errors.CodeMalformedInput, errors.GetCode(err))
			assert.ErrorIs(t, err, core.ErrMalformedInput)
		})
	}
}
