package formatting

import (
	"fmt"
	"strconv"
	"strings"
)

var smallNumbers = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17,
	"eighteen": 18, "nineteen": 19,
}

var tensNumbers = map[string]int{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var scaleNumbers = map[string]int{
	"hundred":  100,
	"thousand": 1000,
	"million":  1000000,
}

// ParseCount parses a count expressed either as a decimal integer ("12") or
// as a spelled-out English number ("twelve", "twenty-five", "two hundred and
// six"). It returns the integer value; validation of range (e.g. positivity)
// is left to the caller.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty count")
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	return parseNumberWords(s)
}

func parseNumberWords(s string) (int, error) {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", " ")

	var total, current int
	seen := false

	for _, word := range strings.Fields(s) {
		if word == "and" {
			continue
		}

		if n, ok := smallNumbers[word]; ok {
			current += n
			seen = true
			continue
		}

		if n, ok := tensNumbers[word]; ok {
			current += n
			seen = true
			continue
		}

		if scale, ok := scaleNumbers[word]; ok {
			if !seen {
				return 0, fmt.Errorf("invalid number phrase: %q", s)
			}
			if scale == 100 {
				current *= scale
			} else {
				total += current * scale
				current = 0
			}
			continue
		}

		return 0, fmt.Errorf("unrecognized number word: %q", word)
	}

	if !seen {
		return 0, fmt.Errorf("invalid number phrase: %q", s)
	}

	return total + current, nil
}
