package ui

import (
	"fmt"

	"spmon/internal/model"
)

// humanBytes scales a byte count through binary units with two decimals:
// 1536 -> "1.50KB", 0 -> "0.00B".
func humanBytes(v float64) string {
	const factor = 1024
	for _, unit := range []string{"", "K", "M", "G", "T"} {
		if v < factor {
			return fmt.Sprintf("%.2f%sB", v, unit)
		}
		v /= factor
	}
	return fmt.Sprintf("%.2fPB", v)
}

func tempString(c model.Celsius) string {
	if !c.Valid {
		return model.Sentinel
	}
	return fmt.Sprintf("%.1f", c.Value)
}
