package ingestion_engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxSplitIterations guards against inputs that would otherwise keep the
// splitter busy for a very long time.
const maxSplitIterations = 1000

// SplitIntoChunks breaks text into pieces of at most maxLength characters,
// preferring the last paragraph break inside the window, then the last
// sentence break past the window's midpoint, then a hard cut. Pieces are
// trimmed. After maxSplitIterations cuts the remainder becomes the final
// chunk as is.
func SplitIntoChunks(text string, maxLength int) []string {
	if maxLength < 1 {
		maxLength = 1
	}
	if utf8.RuneCountInString(text) <= maxLength {
		return []string{text}
	}

	var chunks []string
	remaining := []rune(text)

	for iteration := 0; len(remaining) > 0; iteration++ {
		if iteration == maxSplitIterations {
			chunks = append(chunks, string(remaining))
			break
		}
		if len(remaining) <= maxLength {
			chunks = append(chunks, string(remaining))
			break
		}

		window := string(remaining[:maxLength])

		if cut := lastRuneIndex(window, "\n\n"); cut != -1 {
			chunks = append(chunks, trimRunes(remaining[:cut]))
			remaining = trimRuneSlice(remaining[cut:])
			continue
		}

		if cut := lastRuneIndex(window, ". "); cut != -1 && cut > maxLength/2 {
			chunks = append(chunks, trimRunes(remaining[:cut+1]))
			remaining = trimRuneSlice(remaining[cut+1:])
			continue
		}

		chunks = append(chunks, trimRunes(remaining[:maxLength]))
		remaining = trimRuneSlice(remaining[maxLength:])
	}

	return chunks
}

// lastRuneIndex is strings.LastIndex measured in runes.
func lastRuneIndex(s, sep string) int {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:i])
}

func trimRunes(r []rune) string {
	return string(trimRuneSlice(r))
}

func trimRuneSlice(r []rune) []rune {
	start, end := 0, len(r)
	for start < end && unicode.IsSpace(r[start]) {
		start++
	}
	for end > start && unicode.IsSpace(r[end-1]) {
		end--
	}
	return r[start:end]
}
