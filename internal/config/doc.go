// Package config loads the optional .shallow-debug.yaml configuration file.
//
// Example:
//
//	version: "1"
//	fmt_path: core::fmt
//	derive:
//	  - ShallowDebug
//	output:
//	  dir: src/generated
//	  suffix: _shallow_debug.rs
//	  header: true
//	jobs: 8
package config
