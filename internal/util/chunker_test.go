package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkWordsPreservesWordSequence(t *testing.T) {
	text := "alpha beta\tgamma\n\ndelta   epsilon zeta eta"
	for _, size := range []int{1, 2, 3, 7, 50} {
		chunks := ChunkWords(text, size)
		require.Equal(t, strings.Fields(text), strings.Fields(strings.Join(chunks, " ")), "size %d", size)
		for i, c := range chunks {
			n := WordCount(c)
			require.LessOrEqual(t, n, size)
			if i < len(chunks)-1 {
				require.Equal(t, size, n, "only the last chunk may be short")
			}
		}
	}
}

func TestChunkWordsWindows(t *testing.T) {
	chunks := ChunkWords("a b c d e", 2)
	require.Equal(t, []string{"a b", "c d", "e"}, chunks)
}

func TestChunkWordsEmpty(t *testing.T) {
	require.Empty(t, ChunkWords("", 10))
	require.Empty(t, ChunkWords(" \n\t ", 10))
}

func TestChunkWordsSingleChunkWhenUnderCap(t *testing.T) {
	chunks := ChunkWords("  one two\nthree ", 3)
	require.Equal(t, []string{"one two three"}, chunks)
}

func TestChunkWordsDefaultCap(t *testing.T) {
	text := strings.Repeat("w ", 2500)
	chunks := ChunkWords(text, 0)
	require.Len(t, chunks, 3)
	require.Equal(t, 500, WordCount(chunks[2]))
}
