// Package hcl reads minipack configuration files written in HCL.
//
// A configuration file holds optional top-level attributes plus optional
// `log` and `run` blocks:
//
//	entry        = "./src/main.js"
//	output       = "dist/bundle.js"
//	target       = lower("ES2020")
//	module_cache = true
//	banner       = "built for ${env("USER")}"
//
//	log {
//	  level  = "debug"
//	  format = "json"
//	}
//
//	run {
//	  max_stack = 2000
//	}
//
// Expressions are evaluated with the functions env, lower and upper. Unknown
// attributes and blocks are rejected. Attributes that are absent leave the
// corresponding setting untouched, so the file acts as one layer on top of
// the built-in defaults.
package hcl
