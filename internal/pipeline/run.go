// Package pipeline sequences the extraction stages into a layered chain that
// always produces a candidate record: model call → strict JSON recovery →
// tolerant regex extraction → minimal regex fallback. A stage failure selects
// the next stage; nothing propagates past the orchestrator.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-parser/internal/extract"
	"github.com/jonathan/resume-parser/internal/llm"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/types"
)

// ModelClient is the remote model dependency. Satisfied by *llm.Client;
// stubbed in tests.
type ModelClient interface {
	GenerateContent(ctx context.Context, prompt string) (map[string]any, error)
}

// Pipeline orchestrates resume parsing for one upload at a time. It holds no
// per-request state and is safe for concurrent use.
type Pipeline struct {
	model  ModelClient
	logger zerolog.Logger
}

// New creates a parsing pipeline backed by the given model client.
func New(model ModelClient, logger zerolog.Logger) *Pipeline {
	return &Pipeline{model: model, logger: logger}
}

// Parse turns uploaded document bytes into a candidate record. It never
// returns an error: every failure mode of the model call or the strict JSON
// path degrades to the tolerant extractor, and in the last resort to the
// minimal fallback over the document text alone.
func (p *Pipeline) Parse(ctx context.Context, data []byte, filename string) *types.CandidateRecord {
	resumeText := extract.Text(data, filename)

	rawText, err := p.modelText(ctx, resumeText)
	if err != nil {
		p.logger.Warn().Err(err).Str("filename", filename).
			Msg("model stage failed, using tolerant extraction on document text")
		return p.tolerant(rawText, resumeText, filename)
	}

	obj, err := parsing.RecoverJSON(rawText)
	if err != nil {
		p.logger.Warn().Err(err).Str("filename", filename).
			Msg("strict JSON recovery failed, using tolerant extraction")
		return p.tolerant(rawText, resumeText, filename)
	}

	if err := parsing.ValidateCandidateObject(obj); err != nil {
		p.logger.Warn().Err(err).Str("filename", filename).
			Msg("recovered object rejected by schema, using tolerant extraction")
		return p.tolerant(rawText, resumeText, filename)
	}

	return types.FromMap(obj)
}

// modelText runs the retried model call and envelope reading. On failure the
// returned text is whatever raw model output is available — possibly empty —
// so the tolerant stage works from real model text, never from an error
// message.
func (p *Pipeline) modelText(ctx context.Context, resumeText string) (string, error) {
	prompt := llm.BuildExtractionPrompt(llm.CandidateRecordSchema(), resumeText)

	envelope, err := p.model.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	return llm.ExtractText(envelope)
}

// tolerant runs the regex-based extractor, degrading to the minimal fallback
// if it somehow does not produce a record. The guard exists because the
// chain's contract is unconditional: an upload must always yield a record.
func (p *Pipeline) tolerant(rawText, resumeText, filename string) (rec *types.CandidateRecord) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Interface("panic", r).Str("filename", filename).
				Msg("tolerant extraction panicked, using minimal fallback")
			rec = parsing.FallbackExtract(resumeText)
		}
	}()

	rec = parsing.TolerantExtract(rawText, resumeText)
	if rec == nil {
		rec = parsing.FallbackExtract(resumeText)
	}
	return rec
}
