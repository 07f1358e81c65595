// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Matches any run of characters outside [a-z0-9].
var nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name to a URL-safe identifier.
// The slug is the routing key for a game, so this must stay deterministic:
// the same name always yields the same slug.
//
// Rules:
//  1. Decompose unicode (NFKD) and drop non-ASCII, so "Pokémon" -> "pokemon"
//  2. Lowercase
//  3. Replace every run of non [a-z0-9] with a single hyphen
//  4. Trim leading/trailing hyphens
//
// Examples:
//
//	"Assassin's Creed: Valhalla" → "assassin-s-creed-valhalla"
//	"DOOM (2016)"                → "doom-2016"
//	"Ori & the Blind Forest"     → "ori-the-blind-forest"
func Slugify(name string) string {
	// Decompose accented characters, then drop what is left of them.
	s := norm.NFKD.String(name)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumericRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	return s
}
