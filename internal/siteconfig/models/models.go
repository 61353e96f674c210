// Package models holds the singleton configuration row types. Each type is
// stored append-only; the newest row is the current configuration.
package models

import "time"

// RateLimitConfig is the platform-wide rate limiting toggle row.
type RateLimitConfig struct {
	ID        int64     `json:"id"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// DarkLangConfig carries the list of released language codes. Languages not
// in the list exist in the catalog but are dark-launched: translations ship,
// the language is not offered to learners.
type DarkLangConfig struct {
	ID                int64     `json:"id"`
	Enabled           bool      `json:"enabled"`
	ReleasedLanguages []string  `json:"released_languages"`
	CreatedAt         time.Time `json:"created_at"`
}
