// README: Known key drifts in model output, rewritten before parsing.
package itinerary

import "strings"

// KeyRename maps a key the model sometimes emits to the contract key.
type KeyRename struct {
	From string
	To   string
}

// KeyRenames is applied per object. Keep entries unambiguous: From must never
// be a valid contract key. A rename is skipped when its target key is already
// in the same object, so the contract key always wins.
var KeyRenames = []KeyRename{
	{From: "theme_name", To: "theme"},
	{From: "themeName", To: "theme"},
	{From: "itinerary_name", To: "theme"},
	{From: "estimated_cost", To: "total_estimated_cost"},
	{From: "totalEstimatedCost", To: "total_estimated_cost"},
	{From: "suggestedSchedule", To: "suggested_schedule"},
	{From: "hours", To: "hours_of_operation"},
	{From: "opening_hours", To: "hours_of_operation"},
	{From: "hoursOfOperation", To: "hours_of_operation"},
	{From: "why_visit", To: "reason"},
	{From: "must_try", To: "recommendations"},
	{From: "mapsLink", To: "maps_link"},
}

var renameIndex = func() map[string]string {
	m := make(map[string]string, len(KeyRenames))
	for _, r := range KeyRenames {
		m[r.From] = r.To
	}
	return m
}()

type objectKey struct {
	start, end int // quoted key span in the raw text
	name       string
	object     int
}

// ApplyKeyRenames rewrites drifted object keys to contract keys. Only keys
// (strings followed by a colon) are touched; values and formatting are kept.
func ApplyKeyRenames(raw string) string {
	keys, present := scanObjectKeys(raw)
	if len(keys) == 0 {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	last := 0
	for _, k := range keys {
		to, ok := renameIndex[k.name]
		if !ok || present[k.object][to] {
			continue
		}
		present[k.object][to] = true
		b.WriteString(raw[last:k.start])
		b.WriteString(`"` + to + `"`)
		last = k.end
	}
	b.WriteString(raw[last:])
	return b.String()
}

// scanObjectKeys lists every object key in raw in order, with the set of key
// names per object. Malformed input yields whatever was seen; the decoder
// reports the syntax error later.
func scanObjectKeys(raw string) ([]objectKey, map[int]map[string]bool) {
	var (
		keys    []objectKey
		present = map[int]map[string]bool{}
		stack   []int // object id, or -1 for arrays
		next    int
	)
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			stack = append(stack, next)
			present[next] = map[string]bool{}
			next++
		case '[':
			stack = append(stack, -1)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case '"':
			end := closingQuote(raw, i+1)
			if end < 0 {
				return keys, present
			}
			if len(stack) > 0 && stack[len(stack)-1] >= 0 && followedByColon(raw, end+1) {
				obj := stack[len(stack)-1]
				name := raw[i+1 : end]
				keys = append(keys, objectKey{start: i, end: end + 1, name: name, object: obj})
				present[obj][name] = true
			}
			i = end
		}
	}
	return keys, present
}

func closingQuote(s string, from int) int {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

func followedByColon(s string, from int) bool {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case ':':
			return true
		default:
			return false
		}
	}
	return false
}
