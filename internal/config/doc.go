// Package config defines the updater settings and provides helpers to
// load, validate and save them in YAML format.
//
// The Config type holds the release registry slug, the application's
// registration name, network timeout and download location. All fields
// have Notepad++ defaults, so a settings file is optional.
package config
