// Package configs loads the optional sitelock.toml project config.
//
// Every setting has a default, so the file is only needed to change them.
// Command-line flags take precedence over the file.
//
//	[site]
//	input = "dist"
//	output = "encrypted/index.html"
//	title = "Protected site"
//
//	[build]
//	password_env = "SITE_PASSWORD"
//	exclude = ["**/*.map"]
//
//	[audit]
//	log = ".sitelock/builds.jsonl"
package configs
