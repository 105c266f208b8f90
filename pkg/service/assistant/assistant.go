package assistant

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"
	"time"

	"github.com/kwikkconnect/kwikkconnect/pkg/domain/interfaces"
	"github.com/kwikkconnect/kwikkconnect/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

//go:embed prompt/analyze.md
var analyzePromptTmpl string

//go:embed prompt/summarize.md
var summarizePromptTmpl string

//go:embed prompt/suggest_fix.md
var suggestFixPromptTmpl string

var (
	analyzePrompt    = template.Must(template.New("analyze").Parse(analyzePromptTmpl))
	summarizePrompt  = template.Must(template.New("summarize").Parse(summarizePromptTmpl))
	suggestFixPrompt = template.Must(template.New("suggest_fix").Parse(suggestFixPromptTmpl))
)

// Service is the gollem-backed AI collaborator for swarm rooms
type Service struct {
	llm gollem.LLMClient
}

var _ interfaces.Assistant = &Service{}

func New(llm gollem.LLMClient) (*Service, error) {
	if llm == nil {
		return nil, goerr.New("LLM client is required")
	}
	return &Service{llm: llm}, nil
}

type promptMessage struct {
	Timestamp string
	Sender    string
	Content   string
}

type promptData struct {
	CurrentTime string
	Case        *model.Case
	Messages    []promptMessage
	Message     string
}

func (s *Service) Analyze(ctx context.Context, c *model.Case) (string, error) {
	return s.generate(ctx, analyzePrompt, promptData{
		CurrentTime: time.Now().UTC().Format(time.RFC3339),
		Case:        c,
	})
}

func (s *Service) Summarize(ctx context.Context, c *model.Case, log []*model.ChatMessage) (string, error) {
	messages := make([]promptMessage, 0, len(log))
	for _, m := range log {
		messages = append(messages, promptMessage{
			Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
			Sender:    m.Sender,
			Content:   m.Content,
		})
	}

	return s.generate(ctx, summarizePrompt, promptData{
		CurrentTime: time.Now().UTC().Format(time.RFC3339),
		Case:        c,
		Messages:    messages,
	})
}

func (s *Service) SuggestFix(ctx context.Context, c *model.Case, message string) (string, error) {
	return s.generate(ctx, suggestFixPrompt, promptData{
		Case:    c,
		Message: message,
	})
}

func (s *Service) generate(ctx context.Context, tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render prompt", goerr.V("template", tmpl.Name()))
	}

	session, err := s.llm.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buf.String()))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content", goerr.V("template", tmpl.Name()))
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("LLM returned empty response", goerr.V("template", tmpl.Name()))
	}

	return strings.TrimSpace(resp.Texts[0]), nil
}
