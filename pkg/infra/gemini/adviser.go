package gemini

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
)

//go:embed prompts/advice_system.md
var systemPrompt string

//go:embed prompts/advice_user.md
var userPromptTemplate string

// Adviser generates improvement advice with an LLM through gollem
type Adviser struct {
	llmClient    gollem.LLMClient
	userTemplate *template.Template
	language     string
}

// NewAdviser creates an Adviser backed by llmClient
func NewAdviser(llmClient gollem.LLMClient, language string) (*Adviser, error) {
	tmpl, err := template.New("user").Parse(userPromptTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse user prompt template")
	}

	if language == "" {
		language = "English"
	}

	return &Adviser{
		llmClient:    llmClient,
		userTemplate: tmpl,
		language:     language,
	}, nil
}

// NewVertexAdviser creates an Adviser using Gemini on Vertex AI with ADC credentials
func NewVertexAdviser(ctx context.Context, projectID, location, modelName, language string) (*Adviser, error) {
	client, err := gemini.New(ctx, projectID, location, gemini.WithModel(modelName))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client",
			goerr.V("project_id", projectID),
			goerr.V("location", location),
		)
	}
	return NewAdviser(client, language)
}

// Advise returns LLM advice for the combined diff. Files without diff text are
// skipped and no call is made when none remain. Failures yield ok=false.
func (x *Adviser) Advise(ctx context.Context, prTitle string, files []*model.FileChange) (string, bool) {
	logger := ctxlog.From(ctx)

	combined := model.CombineDiffs(files)
	if strings.TrimSpace(combined) == "" {
		logger.Debug("No diff text available, skipping improvement advice")
		return "", false
	}

	advice, err := x.generate(ctx, prTitle, combined)
	if err != nil {
		logger.Warn("Gemini improvement advice failed, omitting the section", "error", err)
		return "", false
	}

	if strings.TrimSpace(advice) == "" {
		return "", false
	}
	return advice, true
}

func (x *Adviser) generate(ctx context.Context, prTitle, diff string) (string, error) {
	var buf bytes.Buffer
	if err := x.userTemplate.Execute(&buf, map[string]string{
		"Language": x.language,
		"Title":    prTitle,
		"Diff":     diff,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute user prompt template")
	}
	userPrompt := buf.String()

	ctxlog.From(ctx).Debug("Calling LLM for improvement advice", "prompt_length", len(userPrompt))

	session, err := x.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.Generate(ctx, []gollem.Input{gollem.Text(userPrompt)})
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate LLM content")
	}
	if resp == nil || len(resp.Texts) == 0 {
		return "", goerr.New("no response from LLM")
	}

	return strings.Join(resp.Texts, ""), nil
}
