// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions for query string values.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use [strconv] directly instead.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts s to an int, returning def when s is blank or not a base-10 integer.
func ToIntD(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}

	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
