// Package config loads the task API's settings from defaults, an optional
// config.yaml and TASKMANAGER_-prefixed environment variables, then validates
// them before the server starts.
package config
