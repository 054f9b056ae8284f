package services

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// TextChunker splits reference documents into overlapping pieces small enough
// to embed.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type wordChunker struct{}

func NewTextChunker() TextChunker {
	return &wordChunker{}
}

// ChunkText implements TextChunker. Chunks are built from whole words, at
// most maxChunkSize runes each (a single longer word becomes its own chunk),
// and each chunk after the first repeats roughly overlap runes of trailing
// words from its predecessor.
func (wc *wordChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 || overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var window []string
	size := 0
	fresh := 0 // words in window not yet emitted

	flush := func() {
		chunks = append(chunks, strings.Join(window, " "))
		window, size = carryOver(window, overlap)
		fresh = 0
	}

	for _, word := range words {
		n := utf8.RuneCountInString(word)
		if len(window) > 0 && size+1+n > maxChunkSize {
			if fresh > 0 {
				flush()
			}
			// The carried overlap alone may still leave no room
			for len(window) > 0 && size+1+n > maxChunkSize {
				if len(window) == 1 {
					size = 0
				} else {
					size -= utf8.RuneCountInString(window[0]) + 1
				}
				window = window[1:]
			}
		}

		if len(window) > 0 {
			size++
		}
		window = append(window, word)
		size += n
		fresh++
	}

	if fresh > 0 {
		chunks = append(chunks, strings.Join(window, " "))
	}
	return chunks
}

// carryOver keeps trailing words of window totalling at most overlap runes.
func carryOver(window []string, overlap int) ([]string, int) {
	if overlap == 0 {
		return nil, 0
	}

	size := 0
	start := len(window)
	for start > 0 {
		n := utf8.RuneCountInString(window[start-1])
		next := size + n
		if size > 0 {
			next++
		}
		if next > overlap {
			break
		}
		size = next
		start--
	}

	kept := make([]string, len(window)-start)
	copy(kept, window[start:])
	return kept, size
}

// JobTitleFromFilename turns "reference_docs/Software_Engineer.pdf" into
// "Software Engineer".
func JobTitleFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}
