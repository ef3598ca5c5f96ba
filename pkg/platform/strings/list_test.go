package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "only separators", raw: " , ,", want: []string{}},
		{name: "trims and keeps order", raw: " b:9092 , a:9092", want: []string{"b:9092", "a:9092"}},
		{name: "drops repeats", raw: "a:9092,b:9092,a:9092", want: []string{"a:9092", "b:9092"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.raw))
		})
	}
}
