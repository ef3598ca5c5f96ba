// Package strings holds string helpers shared by config parsing.
package strings

import "strings"

// SplitList splits a comma-separated value, trimming each element and
// dropping empties and repeats. Order of first occurrence is preserved.
//
//	SplitList(" kafka-1:9092, kafka-2:9092,,kafka-1:9092") // ["kafka-1:9092" "kafka-2:9092"]
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
