package emitter

import (
	"errors"
	"strings"
	"text/template"

	"github.com/lithammer/dedent"
	"github.com/vk/minipack/internal/bundleerr"
	"github.com/vk/minipack/internal/graph"
	"github.com/vk/minipack/internal/modpath"
)

// Options tunes the generated program.
type Options struct {
	// ModuleCache memoizes module objects by path. Off by default, which
	// re-executes a module on every require.
	ModuleCache bool
	// Banner is emitted as line comments before the program.
	Banner string
}

var bootstrap = template.Must(template.New("bootstrap").Parse(strings.TrimLeft(dedent.Dedent(`
	(function (bundle) {
	  if (bundle.version !== {{.Version}}) {
	    throw new Error("unsupported bundle encoding version: " + bundle.version);
	  }
	  var modules = bundle.modules;
	  var hasOwn = Object.prototype.hasOwnProperty;
	  function moduleNotFound(modulePath) {
	    var err = new Error("module not found: " + modulePath);
	    err.name = {{.NotFoundName}};
	    err.modulePath = modulePath;
	    return err;
	  }
	{{- if .ModuleCache}}
	  var cache = {};
	{{- end}}
	  function require(modulePath) {
	    if (!hasOwn.call(modules, modulePath)) {
	      throw moduleNotFound(modulePath);
	    }
	{{- if .ModuleCache}}
	    if (hasOwn.call(cache, modulePath)) {
	      return cache[modulePath].exports;
	    }
	{{- end}}
	    var record = modules[modulePath];
	    function localRequire(specifier) {
	      if (!hasOwn.call(record.dependencies, specifier)) {
	        throw new Error("cannot resolve \"" + specifier + "\" from " + modulePath);
	      }
	      return require(record.dependencies[specifier]);
	    }
	    var module = { exports: {} };
	{{- if .ModuleCache}}
	    cache[modulePath] = module;
	{{- end}}
	    record.factory.call(module.exports, localRequire, module, module.exports);
	    return module.exports;
	  }
	  require(bundle.entry);
	})({{.Bundle}});
`), "\n")))

type bootstrapData struct {
	Version      int
	NotFoundName string
	ModuleCache  bool
	Bundle       string
}

// Emit renders g as a program that starts by requiring entry.
func Emit(g *graph.Graph, entry string, opts Options) (string, error) {
	if g == nil {
		return "", errors.New("emit: nil graph")
	}
	if entry == "" {
		return "", errors.New("emit: empty entry path")
	}

	var sb strings.Builder
	writeBanner(&sb, opts.Banner)

	err := bootstrap.Execute(&sb, bootstrapData{
		Version:      EncodingVersion,
		NotFoundName: quote(bundleerr.ModuleNotFoundName),
		ModuleCache:  opts.ModuleCache,
		Bundle:       encodeBundle(g, modpath.Normalize(entry)),
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeBanner(sb *strings.Builder, banner string) {
	banner = strings.TrimRight(banner, "\n")
	if banner == "" {
		return
	}
	for _, line := range strings.Split(banner, "\n") {
		sb.WriteString("// ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}
