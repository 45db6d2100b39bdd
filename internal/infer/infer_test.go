package infer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/prepforge/interviewharvest/internal/questions"
	"github.com/prepforge/interviewharvest/internal/review"
)

// stubClient returns canned responses per call, in order.
type stubClient struct {
	responses []string
	errs      []error
	calls     int
	requests  []openai.ChatCompletionRequest
}

func (s *stubClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	i := s.calls
	s.calls++
	s.requests = append(s.requests, req)
	if i < len(s.errs) && s.errs[i] != nil {
		return openai.ChatCompletionResponse{}, s.errs[i]
	}
	body := "{}"
	if i < len(s.responses) {
		body = s.responses[i]
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: body}}},
	}, nil
}

func records(t *testing.T, n int) []review.Record {
	t.Helper()
	out := make([]review.Record, 0, n)
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("Interview %d covered several technical topics and behavioral questions in depth.", i)
		rec, err := review.NewRecord(1, i+1, text)
		if err != nil {
			t.Fatalf("build record: %v", err)
		}
		out = append(out, rec)
	}
	return out
}

func TestExtractQuestionsEmptyRecords(t *testing.T) {
	e := &Extractor{Client: &stubClient{}, Model: "test-model", Delay: -1}
	if _, err := e.ExtractQuestions(context.Background(), nil); !errors.Is(err, review.ErrNoInterviews) {
		t.Fatalf("expected ErrNoInterviews, got %v", err)
	}
}

func TestExtractQuestionsUnconfigured(t *testing.T) {
	e := &Extractor{}
	if _, err := e.ExtractQuestions(context.Background(), records(t, 1)); err == nil {
		t.Fatalf("expected configuration error")
	}
}

func TestExtractQuestionsSingleChunk(t *testing.T) {
	stub := &stubClient{responses: []string{
		"```json\n{\"coding_questions\": [\"Implement binary search over a sorted slice.\"], \"hr_questions\": [\"What are your salary expectations for this role?\"]}\n```",
	}}
	e := &Extractor{Client: stub, Model: "test-model", Delay: -1}
	res, err := e.ExtractQuestions(context.Background(), records(t, 3))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.ChunksProcessed != 1 || res.ChunksFailed != 0 {
		t.Fatalf("unexpected chunk counters: %+v", res)
	}
	if got := res.Questions[questions.Coding]; len(got) != 1 || got[0] != "Implement binary search over a sorted slice" {
		t.Fatalf("unexpected coding questions: %v", got)
	}
	if got := res.Questions[questions.HR]; len(got) != 1 {
		t.Fatalf("unexpected hr questions: %v", got)
	}
	if len(stub.requests) != 1 {
		t.Fatalf("expected one call, got %d", len(stub.requests))
	}
	req := stub.requests[0]
	if req.Model != "test-model" || len(req.Messages) != 2 {
		t.Fatalf("unexpected request shape: %+v", req)
	}
	if !strings.Contains(req.Messages[1].Content, "CHUNK 1 INTERVIEWS") {
		t.Fatalf("prompt missing chunk header: %s", req.Messages[1].Content)
	}
}

func TestExtractQuestionsChunking(t *testing.T) {
	stub := &stubClient{}
	e := &Extractor{Client: stub, Model: "test-model", ChunkSize: 10, Delay: -1}
	res, err := e.ExtractQuestions(context.Background(), records(t, 25))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if stub.calls != 3 {
		t.Fatalf("expected 3 chunk calls, got %d", stub.calls)
	}
	if res.ChunksProcessed != 3 {
		t.Fatalf("expected 3 processed chunks, got %d", res.ChunksProcessed)
	}
	for i, want := range []string{"CHUNK 1", "CHUNK 2", "CHUNK 3"} {
		if !strings.Contains(stub.requests[i].Messages[1].Content, want) {
			t.Fatalf("request %d missing %q", i, want)
		}
	}
}

func TestExtractQuestionsMaxChunks(t *testing.T) {
	stub := &stubClient{}
	e := &Extractor{Client: stub, Model: "test-model", ChunkSize: 5, MaxChunks: 2, Delay: -1}
	if _, err := e.ExtractQuestions(context.Background(), records(t, 30)); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if stub.calls != 2 {
		t.Fatalf("expected 2 calls with MaxChunks=2, got %d", stub.calls)
	}
}

func TestExtractQuestionsFailedChunkIsolated(t *testing.T) {
	stub := &stubClient{
		responses: []string{
			"{\"coding_questions\": [\"Solve the coin change problem with dynamic programming.\"]}",
			"not json at all",
		},
	}
	e := &Extractor{Client: stub, Model: "test-model", ChunkSize: 2, Delay: -1}
	res, err := e.ExtractQuestions(context.Background(), records(t, 4))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.ChunksProcessed != 1 || res.ChunksFailed != 1 {
		t.Fatalf("expected 1 processed and 1 failed, got %+v", res)
	}
	if got := res.Questions[questions.Coding]; len(got) != 1 {
		t.Fatalf("expected surviving chunk's question, got %v", got)
	}
}

func TestExtractQuestionsPausesBetweenChunks(t *testing.T) {
	var slept []time.Duration
	sleepFunc = func(d time.Duration) { slept = append(slept, d) }
	defer func() { sleepFunc = nil }()

	stub := &stubClient{}
	e := &Extractor{Client: stub, Model: "test-model", ChunkSize: 2, Delay: 250 * time.Millisecond}
	if _, err := e.ExtractQuestions(context.Background(), records(t, 6)); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(slept) != 2 {
		t.Fatalf("expected 2 pauses for 3 chunks, got %d", len(slept))
	}
	for _, d := range slept {
		if d != 250*time.Millisecond {
			t.Fatalf("unexpected pause duration: %v", d)
		}
	}
}

func TestExtractQuestionsDedupesAcrossChunks(t *testing.T) {
	body := "{\"behavioral_questions\": [\"Tell me about a conflict you resolved.\"]}"
	stub := &stubClient{responses: []string{body, body}}
	e := &Extractor{Client: stub, Model: "test-model", ChunkSize: 1, Delay: -1}
	res, err := e.ExtractQuestions(context.Background(), records(t, 2))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got := res.Questions[questions.Behavioral]; len(got) != 1 {
		t.Fatalf("expected cross-chunk dedupe, got %v", got)
	}
}

func TestParseResponse(t *testing.T) {
	body := "```json\n{\"sql_questions\": [\"Write a query using GROUP BY and HAVING.\", 42], \"bogus_questions\": [\"dropped\"]}\n```"
	got, err := parseResponse(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if qs := got[questions.SQL]; len(qs) != 1 || qs[0] != "Write a query using GROUP BY and HAVING." {
		t.Fatalf("unexpected sql questions: %v", qs)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected extra categories: %v", got)
	}
}

func TestParseResponseRejectsNonJSON(t *testing.T) {
	if _, err := parseResponse("sorry, I cannot do that"); err == nil {
		t.Fatalf("expected parse error")
	}
}
