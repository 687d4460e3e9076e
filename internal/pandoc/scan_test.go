// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import "testing"

func TestFirstHeading(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", ""},
		{"no heading", "just text\nmore text\n", ""},
		{"simple heading", "# Hello World\n\ntext\n", "Hello World"},
		{"heading after text", "intro paragraph\n\n# Real Title\n", "Real Title"},
		{"first of several", "# First\n\n# Second\n", "First"},
		{"subheading is not top-level", "## Section\n\n# Top\n", "Top"},
		{"heading inside code fence is skipped", "```sh\n# not a heading\n```\n# Actual\n", "Actual"},
		{"tilde fence is skipped", "~~~\n# nope\n~~~\n# Yes\n", "Yes"},
		{"trailing whitespace trimmed", "# Padded   \n", "Padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstHeading(tt.body); got != tt.want {
				t.Errorf("FirstHeading() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContainsCJK(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want bool
	}{
		{"empty", "", false},
		{"ascii only", "plain English text, 123", false},
		{"latin accents are not CJK", "café naïve résumé", false},
		{"han", "中文文档", true},
		{"hiragana", "これはテストです", true},
		{"katakana mixed with ascii", "use パンドク here", true},
		{"hangul", "한국어 문서", true},
		{"single CJK char in long ascii text", "abcdefgh 漢 ijklmnop", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsCJK(tt.s); got != tt.want {
				t.Errorf("ContainsCJK(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}
