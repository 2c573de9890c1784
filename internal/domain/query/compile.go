package query

import (
	"strconv"
	"strings"
)

// Compile serializes the spec into the downstream search API's query-string
// dialect. Deterministic and pure: the output starts with '?' and contains
// only keys whose value is non-empty. List fields are comma-joined. Diet
// entries attach to the preceding entry with ',' for AND and '|' for OR;
// entries with the none connector are dropped. maxReadyTime is omitted when
// zero or negative (zero is the "unspecified" sentinel).
func (s *Spec) Compile() string {
	var b strings.Builder
	b.WriteByte('?')
	b.WriteString("query=")
	b.WriteString(s.Query)

	writeCuisines(&b, "cuisine", s.Cuisine)
	writeCuisines(&b, "excludeCuisine", s.ExcludeCuisine)
	writeDiet(&b, s.Diet)
	writeList(&b, "intolerances", intoleranceStrings(s.Intolerances))
	writeList(&b, "includeIngredients", s.IncludeIngredients)
	writeList(&b, "excludeIngredients", s.ExcludeIngredients)

	if s.Type != "" {
		b.WriteString("&type=")
		b.WriteString(string(s.Type))
	}
	if s.MaxReadyTime > 0 {
		b.WriteString("&maxReadyTime=")
		b.WriteString(strconv.Itoa(s.MaxReadyTime))
	}
	return b.String()
}

func writeCuisines(b *strings.Builder, key string, values []Cuisine) {
	if len(values) == 0 {
		return
	}
	ss := make([]string, len(values))
	for i, v := range values {
		ss[i] = string(v)
	}
	writeList(b, key, ss)
}

func intoleranceStrings(values []Intolerance) []string {
	ss := make([]string, len(values))
	for i, v := range values {
		ss[i] = string(v)
	}
	return ss
}

func writeList(b *strings.Builder, key string, values []string) {
	if len(values) == 0 {
		return
	}
	b.WriteByte('&')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(strings.Join(values, ","))
}

func writeDiet(b *strings.Builder, entries []DietEntry) {
	kept := make([]DietEntry, 0, len(entries))
	for _, e := range entries {
		if e.Connector == ConnectorNone || e.Diet == "" {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == 0 {
		return
	}
	b.WriteString("&diet=")
	for i, e := range kept {
		if i > 0 {
			if e.Connector == ConnectorOR {
				b.WriteByte('|')
			} else {
				b.WriteByte(',')
			}
		}
		b.WriteString(string(e.Diet))
	}
}
