package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortenExplanation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "keeps three sentences",
			in:   "A stack is LIFO. Push adds. Pop removes. Peek reads the top. Done.",
			want: "A stack is LIFO. Push adds. Pop removes.",
		},
		{
			name: "short text unchanged",
			in:   "  Recursion calls itself!  ",
			want: "Recursion calls itself!",
		},
		{
			name: "question marks do not count as periods",
			in:   "Why? Because. It works. Really. Extra.",
			want: "Why? Because. It works. Really.",
		},
		{
			name: "oversized first sentence returned whole",
			in:   strings.Repeat("a", 950) + ". Tail.",
			want: strings.Repeat("a", 950) + ". Tail.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortenExplanation(tt.in))
		})
	}
}

func TestShortenExplanation_CharacterLimit(t *testing.T) {
	first := strings.Repeat("x", 500) + "."
	second := strings.Repeat("y", 500) + "."

	assert.Equal(t, first, ShortenExplanation(first+" "+second))
}

func TestTutorService_Explain(t *testing.T) {
	gemini := &fakeGemini{text: "Big-O describes growth. It ignores constants. It bounds the worst case. More detail follows."}
	svc := NewTutorService(gemini)

	resp, err := svc.Explain(context.Background(), "  What is Big-O?  ")
	require.NoError(t, err)
	assert.Equal(t, "What is Big-O?", resp.Question)
	assert.Equal(t, "Big-O describes growth. It ignores constants. It bounds the worst case.", resp.Explanation)
	assert.Equal(t, resp.Explanation, resp.SpeechText)
	require.Len(t, gemini.prompts, 1)
	assert.Contains(t, gemini.prompts[0], "Question: What is Big-O?")
}

func TestTutorService_Errors(t *testing.T) {
	gemini := &fakeGemini{err: errors.New("quota exceeded")}
	svc := NewTutorService(gemini)

	_, err := svc.Explain(context.Background(), "   ")
	assert.True(t, errors.Is(err, ErrInvalidRequest))
	assert.Empty(t, gemini.prompts)

	_, err = svc.Explain(context.Background(), "What is a mutex?")
	assert.True(t, errors.Is(err, ErrTextGeneration))
}
