package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultVoice  = "en-US-terrell"
	SamanthaVoice = "en-US-samantha"
)

var ErrSpeechUnavailable = errors.New("speech synthesis is not configured")

// BuiltinVoices are always offered, whatever the provider reports.
var BuiltinVoices = []Voice{
	{ID: SamanthaVoice, Name: "en-US-Samantha"},
	{ID: DefaultVoice, Name: "en-US-Terrell"},
}

type Voice struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type SpeechService interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
	ListVoices(ctx context.Context) []Voice
	Available() bool
}

type murfService struct {
	apiKey       string
	baseURL      string
	defaultVoice string
	httpClient   *http.Client
}

// NewSpeechService returns a Murf-backed synthesizer. With an empty apiKey
// every Synthesize call fails with ErrSpeechUnavailable.
func NewSpeechService(apiKey, baseURL, defaultVoice string) SpeechService {
	if baseURL == "" {
		baseURL = "https://api.murf.ai"
	}
	if !isBuiltinVoice(defaultVoice) {
		defaultVoice = DefaultVoice
	}
	return &murfService{
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		defaultVoice: defaultVoice,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

func isBuiltinVoice(id string) bool {
	for _, v := range BuiltinVoices {
		if v.ID == id {
			return true
		}
	}
	return false
}

// ResolveVoice maps an unknown voice id onto the default one.
func (m *murfService) ResolveVoice(voiceID string) string {
	if isBuiltinVoice(voiceID) {
		return voiceID
	}
	return m.defaultVoice
}

func (m *murfService) Available() bool {
	return m.apiKey != ""
}

type murfGenerateRequest struct {
	VoiceID        string `json:"voiceId"`
	Text           string `json:"text"`
	Format         string `json:"format"`
	EncodeAsBase64 bool   `json:"encodeAsBase64"`
}

type murfGenerateResponse struct {
	AudioFile    string `json:"audioFile"`
	EncodedAudio string `json:"encodedAudio"`
}

// Synthesize implements SpeechService and returns MP3 audio.
func (m *murfService) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if !m.Available() {
		return nil, ErrSpeechUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	body, err := json.Marshal(murfGenerateRequest{
		VoiceID:        m.ResolveVoice(voiceID),
		Text:           text,
		Format:         "MP3",
		EncodeAsBase64: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode speech request: %w", err)
	}

	var out murfGenerateResponse
	if err := m.do(ctx, http.MethodPost, "/v1/speech/generate", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}

	if out.EncodedAudio != "" {
		audio, err := base64.StdEncoding.DecodeString(out.EncodedAudio)
		if err != nil {
			return nil, fmt.Errorf("failed to decode audio: %w", err)
		}
		return audio, nil
	}
	if out.AudioFile != "" {
		return m.download(ctx, out.AudioFile)
	}
	return nil, fmt.Errorf("speech response carried no audio")
}

type murfVoice struct {
	VoiceID     string `json:"voiceId"`
	DisplayName string `json:"displayName"`
}

// ListVoices implements SpeechService. The provider's list is merged with
// BuiltinVoices, deduplicated by id; any failure yields just the built-ins.
func (m *murfService) ListVoices(ctx context.Context) []Voice {
	builtins := append([]Voice(nil), BuiltinVoices...)
	if !m.Available() {
		return builtins
	}

	var remote []murfVoice
	if err := m.do(ctx, http.MethodGet, "/v1/speech/voices", nil, &remote); err != nil {
		log.Printf("⚠️  Failed to list voices, using defaults: %v\n", err)
		return builtins
	}

	seen := make(map[string]bool)
	for _, v := range BuiltinVoices {
		seen[v.ID] = true
	}

	var voices []Voice
	for _, v := range remote {
		if v.VoiceID == "" || seen[v.VoiceID] {
			continue
		}
		seen[v.VoiceID] = true
		name := v.DisplayName
		if name == "" {
			name = v.VoiceID
		}
		voices = append(voices, Voice{ID: v.VoiceID, Name: name})
	}
	return append(voices, builtins...)
}

func (m *murfService) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, m.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("api-key", m.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("murf request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("murf returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode murf response: %w", err)
	}
	return nil
}

func (m *murfService) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("audio download returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
