package chapters

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"bdmenu/internal/services"
)

// ParseSeconds converts HH:MM:SS into whole seconds.
func ParseSeconds(ts string) (int, error) {
	if !Valid(ts) {
		return 0, services.Wrap(services.ErrValidation, "chapters", "parse", fmt.Sprintf("invalid timestamp %q", ts), nil)
	}
	parts := strings.Split(ts, ":")
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	sec, _ := strconv.Atoi(parts[2])
	return h*3600 + m*60 + sec, nil
}

// FormatSeconds renders whole seconds as HH:MM:SS. Hours are not wrapped.
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Offset shifts every timestamp by seconds, rounding half to even to the
// nearest whole second.
func Offset(list []string, seconds float64) ([]string, error) {
	out := make([]string, 0, len(list))
	for _, ts := range list {
		base, err := ParseSeconds(ts)
		if err != nil {
			return nil, err
		}
		shifted := math.RoundToEven(float64(base) + seconds)
		out = append(out, FormatSeconds(int(shifted)))
	}
	return out, nil
}
