package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ReviewOutput adalah verdict reviewer: ringkasan + flag perlu perhatian staf,
// plus field advisory soal kelengkapan/keterbacaan.
type ReviewOutput struct {
	Summary             string `json:"summary"`
	NeedsHumanAttention bool   `json:"needsHumanAttention"`
	IsComplete          bool   `json:"isComplete"`
	IsLegible           bool   `json:"isLegible"`
}

// ReviewDocument adalah isi dokumen yang dikirim inline ke reviewer.
type ReviewDocument struct {
	Data     []byte
	MIMEType string
}

type ApplicationReviewer interface {
	Review(ctx context.Context, formData map[string]any, documents []ReviewDocument) (*ReviewOutput, error)
}

// =============================================================================
// GEMINI REVIEWER
// =============================================================================

// GeminiReviewer menilai kelengkapan & keterbacaan pendaftaran lewat Gemini,
// dengan output JSON terstruktur.
type GeminiReviewer struct {
	client *genai.Client
	model  string
}

func NewGeminiReviewer(apiKey, model string) (*GeminiReviewer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiReviewer{client: client, model: model}, nil
}

var reviewSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary":             {Type: genai.TypeString, Description: "Short summary of the review for school staff."},
		"needsHumanAttention": {Type: genai.TypeBoolean, Description: "True if the submission needs manual follow-up."},
		"isComplete":          {Type: genai.TypeBoolean, Description: "True if every required field looks filled in."},
		"isLegible":           {Type: genai.TypeBoolean, Description: "True if attached documents are readable."},
	},
	Required: []string{"summary", "needsHumanAttention", "isComplete", "isLegible"},
}

const reviewPrompt = `You are an admissions assistant for a school. Review the
application form data below (and any attached document images) for completeness
and legibility. Flag anything that school staff should double-check. Answer in
Indonesian. Form data as JSON:
`

func (r *GeminiReviewer) Review(ctx context.Context, formData map[string]any, documents []ReviewDocument) (*ReviewOutput, error) {
	payload, err := json.Marshal(formData)
	if err != nil {
		return nil, &ReviewError{Err: err}
	}

	parts := []*genai.Part{genai.NewPartFromText(reviewPrompt + string(payload))}
	for _, d := range documents {
		parts = append(parts, genai.NewPartFromBytes(d.Data, d.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	res, err := r.client.Models.GenerateContent(ctx, r.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   reviewSchema,
	})
	if err != nil {
		return nil, &ReviewError{Err: err}
	}

	out, err := parseReviewJSON(res.Text())
	if err != nil {
		return nil, &ReviewError{Err: err}
	}
	return out, nil
}

// parseReviewJSON memvalidasi bentuk jawaban model; field wajib yang hilang
// diperlakukan sebagai kegagalan review, bukan verdict.
func parseReviewJSON(raw string) (*ReviewOutput, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	if raw == "" {
		return nil, errors.New("jawaban reviewer kosong")
	}

	var aux struct {
		Summary             *string `json:"summary"`
		NeedsHumanAttention *bool   `json:"needsHumanAttention"`
		IsComplete          *bool   `json:"isComplete"`
		IsLegible           *bool   `json:"isLegible"`
	}
	if err := json.Unmarshal([]byte(raw), &aux); err != nil {
		return nil, fmt.Errorf("jawaban reviewer bukan JSON valid: %w", err)
	}
	if aux.Summary == nil || *aux.Summary == "" || aux.NeedsHumanAttention == nil {
		return nil, errors.New("jawaban reviewer tidak memuat summary/needsHumanAttention")
	}

	out := &ReviewOutput{
		Summary:             *aux.Summary,
		NeedsHumanAttention: *aux.NeedsHumanAttention,
	}
	if aux.IsComplete != nil {
		out.IsComplete = *aux.IsComplete
	}
	if aux.IsLegible != nil {
		out.IsLegible = *aux.IsLegible
	}
	return out, nil
}

// Close ada demi simetri wiring saat shutdown; client genai berbasis HTTP
// dan tidak punya teardown eksplisit.
func (r *GeminiReviewer) Close() error { return nil }
