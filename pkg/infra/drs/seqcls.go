package drs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rkdwoals159/pr-ai-reviewer/pkg/domain/model"
)

const (
	defaultScore = 0.5

	labelPrefix   = "DRS-LLM classification label: "
	remoteSummary = "Risk estimate based on DRS-LLM sequence classification."
)

// Response fields probed in priority order
var (
	scoreFields = []string{"score", "risk", "prob"}
	labelFields = []string{"label", "class"}
)

// seqClsRequest is one batch element. The service reads the diff from "code_diff".
type seqClsRequest struct {
	CodeDiff      string `json:"code_diff"`
	CommitMessage string `json:"commit_message"`
}

// prediction is one normalized element of a seq-cls response
type prediction struct {
	Score float64
	Label string
}

func (x prediction) summary() string {
	if x.Label == "" {
		return remoteSummary
	}
	return labelPrefix + x.Label + " " + remoteSummary
}

// ScoreRisk scores every file with the DRS sequence classification model in a
// single batched call. Any failure falls back to BuildMockReport with the reason
// embedded in the item summaries.
func (c *Client) ScoreRisk(ctx context.Context, pr *model.PullRequest, files []*model.FileChange) *model.RiskReport {
	logger := ctxlog.From(ctx)

	if !c.Configured() {
		logger.Warn("DRS API base URL is not set, falling back to mock risk scoring")
		return BuildMockReport(files, ReasonNotConfigured)
	}

	var title string
	if pr != nil {
		title = pr.Title
	}

	batch := make([]seqClsRequest, 0, len(files))
	for _, f := range files {
		var patch string
		if f != nil {
			patch = f.Patch
		}
		batch = append(batch, seqClsRequest{
			CodeDiff:      patch,
			CommitMessage: title,
		})
	}

	logger.Debug("Calling DRS seq-cls API", "file_count", len(batch))

	body, err := c.post(ctx, seqClsPath, batch)
	if err != nil {
		logFailure(ctx, "DRS API call failed, falling back to mock risk scoring", err)
		return BuildMockReport(files, reasonCallFailed+failureMessage(err))
	}

	predictions, raw, err := decodeSeqClsResponse(body)
	if err != nil {
		logger.Warn("Unexpected DRS response, falling back to mock risk scoring", "error", err)
		return BuildMockReport(files, ReasonUnexpectedShape)
	}

	// Response element i belongs to request element i; the service echoes no file key.
	items := make([]*model.RiskItem, 0, len(files))
	for i, f := range files {
		p := prediction{Score: defaultScore}
		if i < len(predictions) {
			p = predictions[i]
		}
		var filename string
		if f != nil {
			filename = f.Filename
		}
		items = append(items, &model.RiskItem{
			Filename:  filename,
			RiskScore: p.Score,
			Summary:   p.summary(),
		})
	}

	if len(predictions) != len(files) {
		logger.Warn("DRS response length differs from request",
			"requested", len(files),
			"received", len(predictions),
		)
	}

	report := model.NewRiskReport(items, raw)
	logger.Debug("DRS risk scoring completed", "overall_risk", report.OverallRisk, "raw", raw)
	return report
}

// decodeSeqClsResponse decodes a seq-cls batch response. A body that is not a JSON
// array is a schema mismatch and yields ErrUnexpectedShape. Elements missing score
// or label fields decode to defaults. Numbers are kept as json.Number so that an
// out of range value only affects its own element.
func decodeSeqClsResponse(body []byte) ([]prediction, any, error) {
	trimmed := bytes.TrimSpace(body)
	if !bytes.HasPrefix(trimmed, []byte("[")) {
		return nil, nil, goerr.Wrap(ErrUnexpectedShape, "DRS seq-cls response is not an array",
			goerr.V("body", truncate(body)))
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, nil, goerr.Wrap(ErrUnexpectedShape, "failed to decode DRS seq-cls response",
			goerr.V("body", truncate(body)),
			goerr.V("error", err.Error()))
	}

	raw, err := decodeWithNumber(trimmed)
	if err != nil {
		return nil, nil, goerr.Wrap(ErrUnexpectedShape, "failed to decode DRS seq-cls response",
			goerr.V("error", err.Error()))
	}

	predictions := make([]prediction, 0, len(elements))
	for _, elem := range elements {
		predictions = append(predictions, decodePrediction(elem))
	}
	return predictions, raw, nil
}

func decodePrediction(elem json.RawMessage) prediction {
	p := prediction{Score: defaultScore}

	decoded, err := decodeWithNumber(elem)
	if err != nil {
		return p
	}
	fields, ok := decoded.(map[string]any)
	if !ok {
		// non-object elements carry neither score nor label
		return p
	}

	for _, key := range scoreFields {
		if v, ok := numberValue(fields[key]); ok {
			p.Score = v
			break
		}
	}
	for _, key := range labelFields {
		if v, ok := fields[key].(string); ok {
			p.Label = v
			break
		}
	}

	p.Score = model.Clamp01(p.Score)
	return p
}

func decodeWithNumber(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// numberValue converts a decoded JSON number. Values beyond float64 range become
// +/-Inf (or 0 on underflow) and are clamped by the caller.
func numberValue(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}

	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}
