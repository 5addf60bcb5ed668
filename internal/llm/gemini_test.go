package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	genai "google.golang.org/genai"
)

func TestClassifyTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	if got := classify(ctx, ctx.Err()); !errors.Is(got, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", got)
	}
}

func TestClassifyAPIStatuses(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{400, ErrBadRequest},
		{401, ErrAuth},
		{403, ErrAuth},
		{429, ErrRateLimited},
		{500, ErrUpstream},
		{503, ErrUpstream},
	}
	for _, tc := range cases {
		err := genai.APIError{Code: tc.code, Message: "upstream says no"}
		if got := classify(context.Background(), err); !errors.Is(got, tc.want) {
			t.Fatalf("code %d: got %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestClassifyPlainNetworkError(t *testing.T) {
	err := fmt.Errorf("dial tcp: connection refused")
	if got := classify(context.Background(), err); !errors.Is(got, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", got)
	}
}

func TestInterpretImageResponseNoCandidates(t *testing.T) {
	_, err := interpretImageResponse(&genai.GenerateContentResponse{})
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
	_, err = interpretImageResponse(nil)
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates for nil response, got %v", err)
	}
}

func TestInterpretImageResponseFinishReasons(t *testing.T) {
	cases := []struct {
		reason genai.FinishReason
		want   error
	}{
		{genai.FinishReasonSafety, ErrBlockedSafety},
		{genai.FinishReason("IMAGE_SAFETY"), ErrBlockedSafety},
		{genai.FinishReason("IMAGE_OTHER"), ErrBlockedContent},
		{genai.FinishReason("RECITATION"), ErrUpstream},
	}
	for _, tc := range cases {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: tc.reason}},
		}
		if _, err := interpretImageResponse(resp); !errors.Is(err, tc.want) {
			t.Fatalf("finishReason %s: got %v, want %v", tc.reason, err, tc.want)
		}
	}
}

func TestInterpretImageResponseNoImageData(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			FinishReason: genai.FinishReasonStop,
			Content:      &genai.Content{Parts: []*genai.Part{{Text: "no image here"}}},
		}},
	}
	if _, err := interpretImageResponse(resp); !errors.Is(err, ErrNoImageData) {
		t.Fatalf("expected ErrNoImageData, got %v", err)
	}
}

func TestInterpretImageResponseExtractsInlineData(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			FinishReason: genai.FinishReasonStop,
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "caption"},
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{1, 2, 3}}},
			}},
		}},
	}
	img, err := interpretImageResponse(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.MimeType != "image/png" || len(img.Data) != 3 {
		t.Fatalf("unexpected image: %+v", img)
	}
}

func TestInterpretImageResponseDefaultsMimeType(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{Data: []byte{1}}},
			}},
		}},
	}
	img, err := interpretImageResponse(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.MimeType != "image/png" {
		t.Fatalf("mime type not defaulted: %q", img.MimeType)
	}
}
