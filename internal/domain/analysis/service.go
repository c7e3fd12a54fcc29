package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/infra/llm/gemini"
	apperrors "github.com/adampierre-jpg/kettlebell-vbt/pkg/errors"
	"github.com/adampierre-jpg/kettlebell-vbt/pkg/metrics"
	"github.com/adampierre-jpg/kettlebell-vbt/pkg/util"
)

const defaultMimeType = "video/mp4"

// Service exposes the video analysis pipeline.
type Service interface {
	Analyze(ctx context.Context, req Request) (Response, error)
	History(ctx context.Context) ([]Record, error)
	HistoryByID(ctx context.Context, id uuid.UUID) (Record, bool, error)
}

type service struct {
	cfg     Config
	model   VideoModel
	history HistoryRepository
	cache   ResultCache
	videos  VideoStore
	logger  *slog.Logger
	now     func() time.Time
	newID   func() uuid.UUID
}

// NewService wires up the analysis domain. videos may be nil when archiving
// is disabled.
func NewService(cfg Config, model VideoModel, history HistoryRepository, cache ResultCache, videos VideoStore, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		model:   model,
		history: history,
		cache:   cache,
		videos:  videos,
		logger:  logger.With("component", "analysis.service"),
		now:     util.NowUTC,
		newID:   uuid.New,
	}
}

func (s *service) Analyze(ctx context.Context, req Request) (Response, error) {
	started := time.Now()

	media, mimeType, err := s.validate(req)
	if err != nil {
		return Response{}, err
	}
	protocol := *req.Protocol
	prompt := BuildPrompt(protocol)

	key := cacheKey(media, prompt)
	if cached, ok, cacheErr := s.cache.Get(ctx, key); cacheErr != nil {
		s.logger.Warn("result cache lookup failed", "error", cacheErr)
	} else if ok {
		s.logger.Info("analysis served from cache", "exercise", protocol.Exercise)
		return Response{
			ID:         s.newID().String(),
			Result:     cached,
			DurationMs: time.Since(started).Milliseconds(),
			Cached:     true,
		}, nil
	}

	out, err := s.model.GenerateContent(ctx, s.cfg.Model, s.buildModelRequest(media, mimeType, prompt))
	if err != nil {
		return Response{}, apperrors.Wrap("model_error", "video analysis request failed", err)
	}

	raw := out.Text()
	s.logger.Debug("model response received", "length", len(raw))

	result := NormalizeResponse(raw)

	id := s.newID()
	s.persist(ctx, id, key, protocol, result, media, mimeType)

	resp := Response{
		ID:         id.String(),
		Result:     result,
		DurationMs: time.Since(started).Milliseconds(),
	}
	if usage := toTokenUsage(out.UsageMetadata); !usage.IsZero() {
		resp.TokenUsage = &usage
	}
	return resp, nil
}

func (s *service) History(ctx context.Context) ([]Record, error) {
	records, err := s.history.List(ctx, s.cfg.HistoryLimit)
	if err != nil {
		return nil, apperrors.Wrap("history_error", "failed to list analyses", err)
	}
	return records, nil
}

func (s *service) HistoryByID(ctx context.Context, id uuid.UUID) (Record, bool, error) {
	rec, ok, err := s.history.Get(ctx, id)
	if err != nil {
		return Record{}, false, apperrors.Wrap("history_error", "failed to load analysis", err)
	}
	return rec, ok, nil
}

// validate enforces the request invariants and decodes the media payload.
// Missing startingArm on an alternating pattern is a caller error, never a
// silent default.
func (s *service) validate(req Request) ([]byte, string, error) {
	if strings.TrimSpace(req.Video) == "" {
		return nil, "", apperrors.Wrap("invalid_input", "video is required", nil)
	}
	if req.Protocol == nil {
		return nil, "", apperrors.Wrap("invalid_input", "protocol is required", nil)
	}
	p := req.Protocol
	if p.Weight <= 0 {
		return nil, "", apperrors.Wrap("invalid_input", "protocol.weight must be positive", nil)
	}
	if p.RepsPerSet <= 0 {
		return nil, "", apperrors.Wrap("invalid_input", "protocol.repsPerSet must be positive", nil)
	}
	if p.Interval <= 0 {
		return nil, "", apperrors.Wrap("invalid_input", "protocol.interval must be positive", nil)
	}
	if p.requiresStartingArm() {
		arm := strings.ToLower(strings.TrimSpace(p.StartingArm))
		if arm != "left" && arm != "right" {
			return nil, "", apperrors.Wrap("invalid_input", "protocol.startingArm is required for alternating arm patterns", nil)
		}
	}

	media, err := decodeVideo(req.Video)
	if err != nil {
		return nil, "", apperrors.Wrap("invalid_input", "video must be base64 encoded", err)
	}
	if s.cfg.MaxVideoBytes > 0 && int64(len(media)) > s.cfg.MaxVideoBytes {
		return nil, "", apperrors.Wrap("invalid_input", fmt.Sprintf("video exceeds the %d byte limit", s.cfg.MaxVideoBytes), nil)
	}

	mimeType := strings.TrimSpace(req.MimeType)
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	return media, mimeType, nil
}

func (s *service) buildModelRequest(media []byte, mimeType, prompt string) gemini.GenerateContentRequest {
	req := gemini.GenerateContentRequest{
		Contents: []gemini.Content{{
			Parts: []gemini.Part{
				{InlineData: &gemini.InlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(media)}},
				{Text: prompt},
			},
		}},
		GenerationConfig: &gemini.GenerationConfig{Temperature: s.cfg.Temperature},
	}
	if s.cfg.JSONHint {
		// A bias, not a guarantee; the normalizer stays defensive either way.
		req.GenerationConfig.ResponseMimeType = "application/json"
	}
	return req
}

// persist runs the best-effort side channels: cache, history, archive.
// Failures are logged and never surface to the caller.
func (s *service) persist(ctx context.Context, id uuid.UUID, key string, protocol Protocol, result Result, media []byte, mimeType string) {
	if err := s.cache.Save(ctx, key, result, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("result cache save failed", "error", err)
	}
	rec := Record{
		ID:        id,
		CreatedAt: s.now(),
		Exercise:  protocol.Exercise,
		Weight:    protocol.Weight,
		Result:    result,
	}
	if err := s.history.Insert(ctx, rec); err != nil {
		s.logger.Warn("history insert failed", "error", err, "id", id)
	}
	if s.videos != nil {
		if err := s.videos.Put(ctx, id.String(), media, mimeType); err != nil {
			s.logger.Warn("video archive failed", "error", err, "id", id)
		}
	}
}

// decodeVideo accepts plain base64 or a data URL payload.
func decodeVideo(encoded string) ([]byte, error) {
	payload := strings.TrimSpace(encoded)
	if strings.HasPrefix(payload, "data:") {
		if idx := strings.Index(payload, ","); idx != -1 {
			payload = payload[idx+1:]
		}
	}
	if data, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(payload)
}

func cacheKey(media []byte, prompt string) string {
	h := sha256.New()
	h.Write(media)
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}

func toTokenUsage(u gemini.UsageMetadata) metrics.TokenUsage {
	return metrics.TokenUsage{
		PromptTokens:     u.PromptTokenCount,
		CompletionTokens: u.CandidatesTokenCount,
		TotalTokens:      u.TotalTokenCount,
	}
}
