package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Target is a language baseline the transformed code must run on.
type Target string

// DefaultTarget is the baseline used when none is configured.
const DefaultTarget Target = "es2015"

var targets = map[Target]api.Target{
	"es5":    api.ES5,
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"es2023": api.ES2023,
	"es2024": api.ES2024,
	"esnext": api.ESNext,
}

// ParseTarget validates a baseline name. Matching is case-insensitive.
func ParseTarget(name string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := targets[t]; !ok {
		return "", fmt.Errorf("unknown target %q (valid: %s)", name, strings.Join(TargetNames(), ", "))
	}
	return t, nil
}

// TargetNames lists every supported baseline, sorted.
func TargetNames() []string {
	names := make([]string, 0, len(targets))
	for t := range targets {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

func (t Target) esbuild() (api.Target, error) {
	et, ok := targets[t]
	if !ok {
		return 0, fmt.Errorf("unknown target %q (valid: %s)", string(t), strings.Join(TargetNames(), ", "))
	}
	return et, nil
}
