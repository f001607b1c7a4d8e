// Package config defines the bundler's configuration model, its defaults
// and validation, and the Loader interface for reading configuration files.
//
// Configuration is layered: Default values, then a configuration file, then
// command-line flags the user set explicitly. Each layer is expressed as an
// Overrides value whose nil fields leave the layer below untouched.
//
// Concrete file formats live in separate packages, such as internal/hcl.
package config
