package llm

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/time/rate"
	genai "google.golang.org/genai"

	"alibi/internal/images"
)

// Image is a single generated image as returned by the upstream service. It
// is handed straight back to the caller and never persisted.
type Image struct {
	MimeType string
	Data     []byte
}

// Generator is the upstream generation boundary the handlers depend on.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string, headshot *images.Headshot) (Image, error)
}

type Options struct {
	APIKey       string
	TextModel    string
	ImageModel   string
	TextTimeout  time.Duration
	ImageTimeout time.Duration
	// RPS/Burst throttle outbound calls against the upstream quota.
	// Zero disables the throttle.
	RPS   float64
	Burst int
}

// Gemini wraps the official genai client. Each call is a single attempt with
// a hard wall-clock timeout; retry policy belongs to the caller.
type Gemini struct {
	cli          *genai.Client
	textModel    string
	imageModel   string
	textTimeout  time.Duration
	imageTimeout time.Duration
	throttle     *rate.Limiter
}

func NewGemini(ctx context.Context, opts Options) (*Gemini, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	var throttle *rate.Limiter
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		throttle = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}

	return &Gemini{
		cli:          cli,
		textModel:    opts.TextModel,
		imageModel:   opts.ImageModel,
		textTimeout:  opts.TextTimeout,
		imageTimeout: opts.ImageTimeout,
		throttle:     throttle,
	}, nil
}

// GenerateText issues one bounded text-generation call and returns the raw
// model text. JSON is requested but not assumed; parsing is the caller's job.
func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.textTimeout)
	defer cancel()

	if err := g.wait(ctx); err != nil {
		return "", err
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.textModel,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", classify(ctx, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoCandidates
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateImage issues one bounded image-generation call. A headshot, when
// present, is sent as an inline-data part ahead of the prompt so the model
// treats it as the reference subject.
func (g *Gemini) GenerateImage(ctx context.Context, prompt string, headshot *images.Headshot) (Image, error) {
	ctx, cancel := context.WithTimeout(ctx, g.imageTimeout)
	defer cancel()

	if err := g.wait(ctx); err != nil {
		return Image{}, err
	}

	parts := make([]*genai.Part, 0, 2)
	if headshot != nil {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{
			MIMEType: headshot.MimeType,
			Data:     headshot.Data,
		}})
	}
	parts = append(parts, &genai.Part{Text: prompt})

	resp, err := g.cli.Models.GenerateContent(ctx, g.imageModel,
		[]*genai.Content{{Parts: parts}},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &genai.ImageConfig{AspectRatio: "16:9"},
		},
	)
	if err != nil {
		return Image{}, classify(ctx, err)
	}

	return interpretImageResponse(resp)
}

func (g *Gemini) wait(ctx context.Context) error {
	if g.throttle == nil {
		return nil
	}
	if err := g.throttle.Wait(ctx); err != nil {
		return classify(ctx, err)
	}
	return nil
}

// interpretImageResponse maps the upstream candidate shape onto the error
// taxonomy. Generation can stop for reasons other than success (safety
// filter, content restriction, no image produced); each maps to a distinct
// failure instead of a generic one.
func interpretImageResponse(resp *genai.GenerateContentResponse) (Image, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return Image{}, ErrNoCandidates
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason != "" && candidate.FinishReason != genai.FinishReasonStop {
		switch candidate.FinishReason {
		case genai.FinishReasonSafety, genai.FinishReason("IMAGE_SAFETY"):
			return Image{}, ErrBlockedSafety
		case genai.FinishReason("IMAGE_OTHER"):
			return Image{}, ErrBlockedContent
		default:
			log.Printf("image generation stopped, finishReason=%s", candidate.FinishReason)
			return Image{}, ErrUpstream
		}
	}

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return Image{}, ErrNoImageData
	}
	for _, part := range candidate.Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return Image{MimeType: mimeType, Data: part.InlineData.Data}, nil
		}
	}
	return Image{}, ErrNoImageData
}

// classify folds transport and API failures into the closed error set.
// Credential problems collapse to ErrAuth so no key detail can reach a
// caller; everything unrecognized becomes a generic upstream failure.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 400:
			return ErrBadRequest
		case 401, 403:
			log.Printf("upstream authentication failed status=%d", apiErr.Code)
			return ErrAuth
		case 429:
			return ErrRateLimited
		default:
			log.Printf("upstream error status=%d preview=%s", apiErr.Code, preview(apiErr.Message))
			return ErrUpstream
		}
	}

	log.Printf("upstream call failed: %s", preview(err.Error()))
	return ErrUpstream
}

// preview truncates upstream diagnostics for logging so oversized or
// sensitive payloads never land in the log wholesale.
func preview(s string) string {
	if len(s) > 200 {
		return s[:200]
	}
	return s
}
