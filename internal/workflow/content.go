package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/straye-as/sales-intelligence/internal/domain"
	"go.uber.org/zap"
)

type ContentAPI interface {
	GenerateContent(ctx context.Context, req domain.ContentGenerateRequest) (*domain.ContentGenerateResponse, error)
}

// Platforms offered by the content generator
var Platforms = []string{"linkedin", "email", "twitter", "blog"}

// Tones offered by the content generator, as displayed
var Tones = []string{"Professional", "Casual", "Persuasive", "Informative", "Friendly", "Urgent"}

const (
	DefaultPlatform = "linkedin"
	DefaultTone     = "professional"
)

// ContentParams is the generator form. TargetAudience and Industry are required.
type ContentParams struct {
	TargetAudience string
	Industry       string
	Tone           string
	Platform       string
	Topic          string
	KeyPoints      []string
	MaxLength      *int
}

// Request validates p and builds the wire request. Tone is lowercased and
// empty tone or platform fall back to the defaults.
func (p ContentParams) Request() (domain.ContentGenerateRequest, error) {
	audience := strings.TrimSpace(p.TargetAudience)
	industry := strings.TrimSpace(p.Industry)
	switch {
	case audience == "" && industry == "":
		return domain.ContentGenerateRequest{}, fmt.Errorf("%w: target audience and industry are required", ErrValidation)
	case audience == "":
		return domain.ContentGenerateRequest{}, fmt.Errorf("%w: target audience is required", ErrValidation)
	case industry == "":
		return domain.ContentGenerateRequest{}, fmt.Errorf("%w: industry is required", ErrValidation)
	}

	tone := strings.ToLower(strings.TrimSpace(p.Tone))
	if tone == "" {
		tone = DefaultTone
	}
	platform := strings.TrimSpace(p.Platform)
	if platform == "" {
		platform = DefaultPlatform
	}

	return domain.ContentGenerateRequest{
		TargetAudience: audience,
		Industry:       industry,
		Tone:           tone,
		Platform:       platform,
		Topic:          strings.TrimSpace(p.Topic),
		KeyPoints:      p.KeyPoints,
		MaxLength:      p.MaxLength,
	}, nil
}

// Content generates marketing copy variations
type Content struct {
	*Machine[*domain.ContentGenerateResponse]
	api    ContentAPI
	logger *zap.Logger
}

func NewContent(api ContentAPI, timeout time.Duration, logger *zap.Logger, observer Observer[*domain.ContentGenerateResponse]) *Content {
	return &Content{
		Machine: NewMachine(timeout, observer),
		api:     api,
		logger:  logger,
	}
}

// Generate refuses incomplete params without issuing a request or changing state
func (c *Content) Generate(ctx context.Context, params ContentParams) (*domain.ContentGenerateResponse, error) {
	req, err := params.Request()
	if err != nil {
		return nil, err
	}

	result, err := c.Run(ctx, func(ctx context.Context) (*domain.ContentGenerateResponse, error) {
		return c.api.GenerateContent(ctx, req)
	})
	if err != nil {
		logRunError(c.logger, "content generation failed", err, zap.String("platform", req.Platform))
		return nil, err
	}

	c.logger.Info("content generated",
		zap.String("platform", req.Platform),
		zap.Int("variations", len(result.Variations)),
	)
	return result, nil
}
