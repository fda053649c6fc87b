package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/jmallard/manifest/internal/pipeline"
	"github.com/jmallard/manifest/internal/prompts"
	"github.com/jmallard/manifest/pkg/formatting"
)

const dateSentinel = "Date not valid"

type service struct {
	agent   gaconfig.AgentConfig
	timeout time.Duration
	logger  *slog.Logger
}

// New creates an extraction service backed by the given agent configuration.
// Each model call runs under its own timeout so one slow call cannot starve
// the rest of an item's pipeline.
func New(cfg gaconfig.AgentConfig, timeout time.Duration, logger *slog.Logger) Service {
	return &service{
		agent:   cfg,
		timeout: timeout,
		logger:  logger.With("system", "extraction"),
	}
}

// Extract sends the extraction prompt for the document type and parses the
// model's JSON response into a raw field set. A response missing any
// declared key is rejected as ErrExtraction rather than silently padded.
func (s *service) Extract(ctx context.Context, docType pipeline.DocumentType, text string) (pipeline.RawFieldSet, error) {
	content, err := s.chat(ctx, prompts.Extract(docType, text))
	if err != nil {
		return nil, err
	}

	fields, err := formatting.Parse[map[string]string](content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	raw := pipeline.RawFieldSet(fields)
	if missing := raw.MissingKeys(pipeline.DeclaredFields(docType)); len(missing) > 0 {
		s.logger.WarnContext(
			ctx, "extraction response missing declared keys",
			"document_type", docType,
			"missing", missing,
		)
		return nil, fmt.Errorf("%w: missing keys %s", ErrExtraction, strings.Join(missing, ", "))
	}

	return raw, nil
}

// ClassifyMandatory checks whether the text supplies every mandatory field
// for the document type. The model answers with either the fixed marker
// phrase or an enumeration of the missing fields, passed through verbatim.
func (s *service) ClassifyMandatory(ctx context.Context, docType pipeline.DocumentType, text string) (*MandatoryReport, error) {
	content, err := s.chat(ctx, prompts.Classify(docType, text))
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(content)
	return &MandatoryReport{
		Present: strings.Contains(message, prompts.MandatoryMarker),
		Message: message,
	}, nil
}

// ClassifyDate resolves a free-form date expression to epoch milliseconds
// (UTC). A non-numeric answer or the model's rejection phrase maps to
// ErrInvalidDate.
func (s *service) ClassifyDate(ctx context.Context, expression string) (int64, error) {
	content, err := s.chat(ctx, prompts.Date(expression))
	if err != nil {
		return 0, err
	}

	answer := strings.TrimSpace(content)
	if answer == "" || strings.Contains(answer, dateSentinel) {
		return 0, ErrInvalidDate
	}

	epochMillis, err := strconv.ParseInt(answer, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, answer)
	}
	return epochMillis, nil
}

func (s *service) chat(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := callContext(ctx, s.timeout)
	defer cancel()

	a, err := agent.New(&s.agent)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Content(), nil
}

// callContext bounds a single outbound call. A non-positive timeout leaves
// the caller's context untouched.
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
