// Package infer is the model-backed question extractor. Records are grouped
// into bounded chunks, each chunk is submitted to an OpenAI-compatible chat
// endpoint under a strict JSON-only contract, and the per-chunk category
// maps are merged through the shared quality gate. Chunk failures are
// isolated: a failed call or an unparsable response contributes zero
// questions and the run continues.
package infer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rs/zerolog/log"

	"github.com/prepforge/interviewharvest/internal/llm"
	"github.com/prepforge/interviewharvest/internal/questions"
	"github.com/prepforge/interviewharvest/internal/review"
)

const (
	// DefaultChunkSize is the number of records serialized per call.
	DefaultChunkSize = 25
	// DefaultDelay separates consecutive chunk submissions to respect the
	// provider's rate limit. Applied regardless of chunk outcome.
	DefaultDelay = time.Second
)

// Extractor submits record chunks to the inference service.
type Extractor struct {
	Client llm.Client
	Model  string
	// ChunkSize bounds records per call; zero means DefaultChunkSize.
	ChunkSize int
	// MaxChunks caps how many leading chunks are processed; zero means all.
	MaxChunks int
	// Delay between chunk submissions; zero means DefaultDelay. Set negative
	// to disable entirely.
	Delay time.Duration
	// Normalizer applies the shared post-merge quality gate. Zero value is
	// replaced with the defaults.
	Normalizer questions.Normalizer
}

// Result is the merged outcome of a run. Failed chunks are counted
// separately from processed ones so "model returned nothing" and "call
// threw" stay distinguishable downstream.
type Result struct {
	Questions       map[questions.Category][]string
	ChunksProcessed int
	ChunksFailed    int
}

// ExtractQuestions runs every chunk in increasing order and merges the
// category maps. The record set must be non-empty.
func (e *Extractor) ExtractQuestions(ctx context.Context, records []review.Record) (Result, error) {
	if len(records) == 0 {
		return Result{}, review.ErrNoInterviews
	}
	if e.Client == nil || strings.TrimSpace(e.Model) == "" {
		return Result{}, errors.New("inference extractor not configured")
	}

	chunkSize := e.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	totalChunks := (len(records) + chunkSize - 1) / chunkSize
	if e.MaxChunks > 0 && totalChunks > e.MaxChunks {
		totalChunks = e.MaxChunks
	}
	log.Info().Int("interviews", len(records)).Int("chunks", totalChunks).Int("chunk_size", chunkSize).Msg("processing interviews with inference extractor")

	merged := map[questions.Category][]string{}
	for _, cat := range questions.All() {
		merged[cat] = []string{}
	}

	res := Result{}
	for chunkNum := 0; chunkNum < totalChunks; chunkNum++ {
		start := chunkNum * chunkSize
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}

		chunkQuestions, err := e.processChunk(ctx, records[start:end], chunkNum+1)
		if err != nil {
			log.Warn().Err(err).Int("chunk", chunkNum+1).Msg("chunk processing failed, continuing")
			res.ChunksFailed++
		} else {
			found := 0
			for cat, qs := range chunkQuestions {
				merged[cat] = append(merged[cat], qs...)
				found += len(qs)
			}
			res.ChunksProcessed++
			log.Info().Int("chunk", chunkNum+1).Int("questions", found).Msg("chunk processed")
		}

		if chunkNum < totalChunks-1 {
			e.pause()
		}
	}

	n := e.Normalizer
	if n.MinLen == 0 && n.MaxLen == 0 {
		n = questions.NewNormalizer()
	}
	for cat := range merged {
		merged[cat] = n.Normalize(merged[cat])
	}
	res.Questions = merged
	return res, nil
}

// processChunk serializes one chunk, calls the model, and parses the
// expected category map. Any failure here fails only this chunk.
func (e *Extractor) processChunk(ctx context.Context, records []review.Record, chunkNum int) (map[questions.Category][]string, error) {
	prompt := buildPrompt(records, chunkNum)
	resp, err := e.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.1,
		N:           1,
	})
	if err != nil {
		return nil, fmt.Errorf("chunk %d call: %w", chunkNum, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chunk %d: no choices", chunkNum)
	}
	return parseResponse(resp.Choices[0].Message.Content)
}

// parseResponse strips an optional code fence and decodes the seven-key
// category object. Unexpected top-level keys are ignored; non-string array
// members are dropped rather than failing the chunk.
func parseResponse(body string) (map[questions.Category][]string, error) {
	raw := stripFence(body)
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("parse response json: %w", err)
	}
	out := map[questions.Category][]string{}
	for key, val := range payload {
		cat, ok := questions.FromKey(key)
		if !ok {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(val, &items); err != nil {
			continue
		}
		for _, item := range items {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				continue
			}
			out[cat] = append(out[cat], s)
		}
	}
	return out, nil
}

// stripFence removes a wrapping markdown code fence when present.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func (e *Extractor) pause() {
	d := e.Delay
	if d == 0 {
		d = DefaultDelay
	}
	if d < 0 {
		return
	}
	if sleepFunc != nil {
		sleepFunc(d)
		return
	}
	time.Sleep(d)
}

// sleepFunc lets tests replace the inter-chunk delay with a recording hook.
var sleepFunc func(time.Duration)
