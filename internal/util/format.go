package util

import "github.com/dustin/go-humanize"

// FormatMoney renders an amount for user-facing messages.
// Example: 1250 -> "$1,250".
func FormatMoney(amount int64) string {
	return "$" + humanize.Comma(amount)
}

func StringPointer(s string) *string {
	return &s
}

func Int64Pointer(i int64) *int64 {
	return &i
}
