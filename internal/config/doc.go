// Package config defines process settings for the day-starter daemon and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the alarm settings file path, the evaluation tick
// interval and the log level.
package config
