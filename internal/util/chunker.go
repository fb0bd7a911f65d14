package util

import "strings"

const DefaultChunkWords = 1000

// ChunkWords splits text into consecutive, non-overlapping windows of at most
// maxWords whitespace-delimited words, re-joined with single spaces. Word order
// is preserved and only the last window may be shorter.
func ChunkWords(text string, maxWords int) []string {
	if maxWords <= 0 {
		maxWords = DefaultChunkWords
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	out := make([]string, 0, (len(words)+maxWords-1)/maxWords)
	for i := 0; i < len(words); i += maxWords {
		end := i + maxWords
		if end > len(words) {
			end = len(words)
		}
		out = append(out, strings.Join(words[i:end], " "))
	}
	return out
}

func WordCount(text string) int {
	return len(strings.Fields(text))
}
