package config

import (
	"fmt"
	"sort"
	"strings"
)

// RenderDefaultTOML renders a commented config.toml with the defaults from
// GetConfigOptions, grouped by dotted-key section.
func RenderDefaultTOML() string {
	var b strings.Builder
	b.WriteString("# LovChat configuration (TOML)\n")

	var sectionOrder []string
	sections := map[string][]ConfigOption{"": nil}
	for _, o := range GetConfigOptions() {
		section, key := "", o.Key
		if i := strings.Index(o.Key, "."); i >= 0 {
			section, key = o.Key[:i], o.Key[i+1:]
		}
		if _, ok := sections[section]; !ok {
			sectionOrder = append(sectionOrder, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}

	for _, o := range sections[""] {
		writeTOMLOption(&b, o)
	}
	for _, section := range sectionOrder {
		b.WriteString("[" + section + "]\n")
		for _, o := range sections[section] {
			writeTOMLOption(&b, o)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeTOMLOption(b *strings.Builder, o ConfigOption) {
	if o.Comment != "" {
		b.WriteString("# " + o.Comment + "\n")
	}
	switch v := o.Default.(type) {
	case string:
		fmt.Fprintf(b, "%s = %q\n\n", o.Key, v)
	case bool, int, int64:
		fmt.Fprintf(b, "%s = %v\n\n", o.Key, v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		fmt.Fprintf(b, "%s = [%s]\n\n", o.Key, strings.Join(quoted, ", "))
	case map[string]any:
		if len(v) == 0 {
			fmt.Fprintf(b, "%s = {}\n\n", o.Key)
			return
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%q = %q", k, fmt.Sprint(v[k]))
		}
		fmt.Fprintf(b, "%s = {%s}\n\n", o.Key, strings.Join(pairs, ", "))
	}
}
