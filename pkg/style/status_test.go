package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		code string
		want ChangeKind
	}{
		{" M", ChangeModified},
		{"M ", ChangeModified},
		{"MM", ChangeModified},
		{"A ", ChangeAdded},
		{"AM", ChangeAdded},
		{" D", ChangeDeleted},
		{"R ", ChangeRenamed},
		{"??", ChangeUntracked},
		{"UU", ChangeConflict},
		{"AA", ChangeConflict},
		{"!!", ChangeOther},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.code))
		})
	}
}

func TestChangeStyle(t *testing.T) {
	for _, kind := range []ChangeKind{ChangeModified, ChangeAdded, ChangeDeleted, ChangeRenamed, ChangeUntracked, ChangeConflict, ChangeOther} {
		assert.Contains(t, ChangeStyle(kind).Sprint("x"), "x")
	}
}
