package util

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

func TokenString(amount int64, symbol string) string {
	return fmt.Sprintf("%v %v", humanize.Comma(amount), symbol)
}

func PercentString(part, whole int64) string {
	if whole == 0 {
		return "0%"
	}
	return fmt.Sprintf("%v%%", humanize.FormatFloat("#,###.##", float64(part)*100/float64(whole)))
}
