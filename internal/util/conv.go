package util

import (
	"strconv"
)

// FormatID 也是答题表单里每道题的字段名
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
