package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type unknownAction struct{}

func (unknownAction) Name() string { return "unknown" }

func TestReduce(t *testing.T) {
	start := Cart{item(1, 1), item(2, 2)}

	tests := []struct {
		name   string
		action Action
		want   Cart
	}{
		{
			name:   "add new product",
			action: AddAction{Product: product(3)},
			want:   Cart{item(1, 1), item(2, 2), item(3, 1)},
		},
		{
			name:   "add existing product",
			action: AddAction{Product: product(2)},
			want:   Cart{item(1, 1), item(2, 3)},
		},
		{
			name:   "remove last unit",
			action: RemoveAction{ID: 1},
			want:   Cart{item(2, 2)},
		},
		{
			name:   "remove one of several",
			action: RemoveAction{ID: 2},
			want:   Cart{item(1, 1), item(2, 1)},
		},
		{
			name:   "remove missing",
			action: RemoveAction{ID: 9},
			want:   start,
		},
		{
			name:   "unknown action",
			action: unknownAction{},
			want:   start,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(start, tt.action)
			assert.True(t, tt.want.Equal(got), "got %+v", got)
			assert.Equal(t, Cart{item(1, 1), item(2, 2)}, start, "input cart must stay untouched")
		})
	}
}

func TestActionNames(t *testing.T) {
	assert.Equal(t, "add", AddAction{}.Name())
	assert.Equal(t, "remove", RemoveAction{}.Name())
}
