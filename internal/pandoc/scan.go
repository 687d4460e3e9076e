// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"bufio"
	"strings"
	"unicode"
)

// FirstHeading returns the text of the first top-level Markdown heading in
// body, or "" when none exists. Fenced code blocks are skipped so a "# ..."
// shell comment inside a code fence is not mistaken for a heading.
func FirstHeading(body string) string {
	inFence := false
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// cjkRanges covers the scripts that require a CJK-capable LaTeX setup.
var cjkRanges = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
}

// ContainsCJK reports whether s contains any CJK character.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if r < 0x80 {
			continue
		}
		for _, rt := range cjkRanges {
			if unicode.Is(rt, r) {
				return true
			}
		}
	}
	return false
}
