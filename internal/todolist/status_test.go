package todolist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"", All},
		{"all", All},
		{"Active", Active},
		{"pending", Active},
		{" completed ", Completed},
		{"done", Completed},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseStatus("archived")
	assert.Error(t, err)
}

func TestStatusNextCycles(t *testing.T) {
	assert.Equal(t, Active, All.Next())
	assert.Equal(t, Completed, Active.Next())
	assert.Equal(t, All, Completed.Next())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}
