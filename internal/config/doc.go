// Package config loads, normalizes, and validates glottisdale configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GLOTTISDALE_OUTPUT_DIR and GLOTTISDALE_SEED. Size and pause ranges arrive
// as strings like "1-4" and are parsed once here into IntRange and FloatRange
// values so the pipeline never handles stringly-typed options.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, typed ranges, and clear validation errors.
package config
