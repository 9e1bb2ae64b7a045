package product

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"100", 100},
		{" 42 ", 42},
		{"007", 7},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuantity(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuantity_Rejections(t *testing.T) {
	for _, input := range []string{"", "-1", "+1", "1.5", "ten", "1 000", "99999999999999999999"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseQuantity(input)
			var fe *FieldError
			require.True(t, errors.As(err, &fe), "expected FieldError, got %v", err)
			assert.Equal(t, "quantity", fe.Field)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = ParseID("1a")
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "id", fe.Field)
	assert.Contains(t, err.Error(), `invalid id "1a"`)
}
