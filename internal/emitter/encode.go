package emitter

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/vk/minipack/internal/graph"
	"github.com/vk/minipack/internal/modpath"
)

// EncodingVersion identifies the layout of the embedded graph literal.
const EncodingVersion = 1

// quote renders s as a JavaScript string literal.
func quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// Marshaling a string cannot fail.
		panic(err)
	}
	return string(b)
}

// encodeBundle writes the versioned graph literal.
func encodeBundle(g *graph.Graph, entry modpath.Path) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	sb.WriteString("  version: ")
	sb.WriteString(strconv.Itoa(EncodingVersion))
	sb.WriteString(",\n  entry: ")
	sb.WriteString(quote(string(entry)))
	sb.WriteString(",\n  modules: {")

	for i, p := range g.Paths() {
		rec, _ := g.Record(p)
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("\n    ")
		sb.WriteString(quote(string(p)))
		sb.WriteString(": {\n      dependencies: ")
		encodeDependencies(&sb, rec)
		sb.WriteString(",\n      factory: function (require, module, exports) {\n")
		sb.WriteString(rec.Code)
		if !strings.HasSuffix(rec.Code, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("      }\n    }")
	}

	sb.WriteString("\n  }\n}")
	return sb.String()
}

func encodeDependencies(sb *strings.Builder, rec *graph.ModuleRecord) {
	if len(rec.Specifiers) == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{ ")
	for i, spec := range rec.Specifiers {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quote(spec))
		sb.WriteString(": ")
		sb.WriteString(quote(string(rec.Dependencies[spec])))
	}
	sb.WriteString(" }")
}
