package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "DOOM", "doom"},
		{"spaces to hyphens", "God of War", "god-of-war"},
		{"already normalized", "hollow-knight", "hollow-knight"},

		// Separator collapsing
		{"apostrophe and colon", "Assassin's Creed: Valhalla", "assassin-s-creed-valhalla"},
		{"parentheses", "DOOM (2016)", "doom-2016"},
		{"ampersand", "Ori & the Blind Forest", "ori-the-blind-forest"},
		{"multiple spaces", "Half   Life", "half-life"},
		{"run of punctuation", "What?! Really...", "what-really"},

		// Hyphen trimming
		{"leading punctuation", "...Baba Is You", "baba-is-you"},
		{"trailing punctuation", "Inside!", "inside"},

		// Accents decompose to base letters
		{"accented vowel", "Pokémon", "pokemon"},
		{"portuguese title", "Coração Selvagem", "coracao-selvagem"},

		// Edge cases
		{"empty string", "", ""},
		{"only punctuation", "!@#$%", ""},
		{"numbers kept", "Left 4 Dead 2", "left-4-dead-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
