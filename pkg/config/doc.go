// Package config loads bongard's layered configuration: embedded defaults,
// the user config file, a project or explicit file, BONGARD_ environment
// variables and finally flag overrides.
package config
