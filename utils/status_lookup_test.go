package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalStatusCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", StatusCodePending},
		{"Pending", StatusCodePending},
		{"requested", StatusCodePending},
		{"1", StatusCodeApproved},
		{"Approved", StatusCodeApproved},
		{"  approved  ", StatusCodeApproved},
		{"2", StatusCodeCancelled},
		{"Cancelled", StatusCodeCancelled},
		{"canceled", StatusCodeCancelled},
		{"Rejected", StatusCodeCancelled},
		{"", ""},
		{"completed", "completed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalStatusCode(tt.in), "input %q", tt.in)
	}
}
