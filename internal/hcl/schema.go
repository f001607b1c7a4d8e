package hcl

import "github.com/vk/minipack/internal/config"

// fileRoot is the decoding target for a whole configuration file.
type fileRoot struct {
	Entry       *string   `hcl:"entry,optional"`
	Output      *string   `hcl:"output,optional"`
	Target      *string   `hcl:"target,optional"`
	ModuleCache *bool     `hcl:"module_cache,optional"`
	Banner      *string   `hcl:"banner,optional"`
	Log         *logBlock `hcl:"log,block"`
	Run         *runBlock `hcl:"run,block"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type runBlock struct {
	MaxStack *int `hcl:"max_stack,optional"`
}

// overrides translates the decoded file into a config layer.
func (r *fileRoot) overrides() config.Overrides {
	o := config.Overrides{
		Entry:       r.Entry,
		Output:      r.Output,
		Target:      r.Target,
		ModuleCache: r.ModuleCache,
		Banner:      r.Banner,
	}
	if r.Log != nil {
		o.LogLevel = r.Log.Level
		o.LogFormat = r.Log.Format
	}
	if r.Run != nil {
		o.MaxCallStackSize = r.Run.MaxStack
	}
	return o
}
