// Package config loads the service configuration from a YAML file and
// environment variables. It covers the listen address and timeouts, the
// question pool location, sampler selection, metrics and logging.
package config
