package mcpserver

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		items  []int
		offset int
		limit  int
		want   []int
	}{
		{"default limit returns all", items, 0, 0, []int{0, 1, 2, 3, 4}},
		{"explicit limit", items, 0, 2, []int{0, 1}},
		{"offset and limit", items, 1, 2, []int{1, 2}},
		{"offset beyond end", items, 5, 2, nil},
		{"negative offset", items, -1, 2, nil},
		{"limit exceeds remaining", items, 3, 10, []int{3, 4}},
		{"overflowing limit", items, 1, math.MaxInt, []int{1, 2, 3, 4}},
		{"empty slice", []int{}, 0, 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(tt.items, tt.offset, tt.limit))
		})
	}
}

func TestPaginate_Caps(t *testing.T) {
	items := make([]int, cfg.MaxLimit+cfg.IssueLimit)
	assert.Len(t, paginate(items, 0, 0), cfg.IssueLimit, "default page size")
	assert.Len(t, paginate(items, 0, len(items)), cfg.MaxLimit, "limit is capped at MaxLimit")
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error returns empty string", nil, ""},
		{"strips absolute path", fmt.Errorf("open /home/user/contracts/api.yaml: no such file"), "open <path>: no such file"},
		{"preserves non-path content", fmt.Errorf("parse error at line 5"), "parse error at line 5"},
		{"strips multiple paths", fmt.Errorf("compare /tmp/a.yaml with /tmp/b.yaml"), "compare <path> with <path>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}
