package entity

import (
	"strconv"
	"unicode/utf16"
)

// DeriveID computes a stable identifier from an article URL.
//
// The hash walks the UTF-16 code units of s and applies h = h*31 + c with
// 32-bit signed wraparound. The absolute value is returned in decimal, so
// the same URL always maps to the same id.
//
//	DeriveID("")  // "0"
//	DeriveID("a") // "97"
func DeriveID(s string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	// int64 で絶対値を取る（MinInt32 のオーバーフロー回避）
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 10)
}
