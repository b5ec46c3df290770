// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/linkshelf/pkg/convert"
)

/*
TestToIntD covers the fallback rules for query string integers.
*/
func TestToIntD(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 7},
		{"blank", "   ", 7},
		{"number", "42", 42},
		{"padded", " 3 ", 3},
		{"negative", "-2", -2},
		{"float", "1.5", 7},
		{"word", "ten", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.ToIntD(tt.in, 7))
		})
	}
}
