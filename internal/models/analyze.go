package models

import (
	"bytes"
	"encoding/json"
)

// ResponseMimeTypeJSON asks the provider to answer with a JSON document
const ResponseMimeTypeJSON = "application/json"

// InboundRequest is the body accepted by the analyze endpoint
type InboundRequest struct {
	UserText     string `json:"userText" validate:"required"`
	SystemPrompt string `json:"systemPrompt,omitempty"`
}

// AnalyzeResponse is the success envelope
type AnalyzeResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Error string `json:"error"`
}

// Part is a single text fragment of a content block
type Part struct {
	Text string `json:"text"`
}

// Content groups parts of one turn
type Content struct {
	Parts []Part `json:"parts"`
}

// GenerationConfig holds provider generation options
type GenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

// UpstreamPayload is the body sent to the provider's generateContent endpoint
type UpstreamPayload struct {
	Contents          []Content        `json:"contents"`
	SystemInstruction Content          `json:"systemInstruction"`
	GenerationConfig  GenerationConfig `json:"generationConfig"`
}

// NewUpstreamPayload builds the provider payload for an inbound request.
// A missing system prompt is sent as an empty text part.
func NewUpstreamPayload(req *InboundRequest) *UpstreamPayload {
	return &UpstreamPayload{
		Contents: []Content{
			{Parts: []Part{{Text: req.UserText}}},
		},
		SystemInstruction: Content{
			Parts: []Part{{Text: req.SystemPrompt}},
		},
		GenerationConfig: GenerationConfig{
			ResponseMimeType: ResponseMimeTypeJSON,
		},
	}
}

// Candidate is one generated answer
type Candidate struct {
	Content *Content `json:"content,omitempty"`
}

// UpstreamResponse is the subset of the provider response the relay reads
type UpstreamResponse struct {
	Candidates []Candidate `json:"candidates,omitempty"`
}

// UnmarshalJSON accepts any JSON document. A link of the candidate chain that
// is absent or has an unexpected type decodes as empty.
func (r *UpstreamResponse) UnmarshalJSON(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	r.Candidates = nil
	root, _ := doc.(map[string]interface{})
	list, _ := root["candidates"].([]interface{})
	for _, item := range list {
		r.Candidates = append(r.Candidates, decodeCandidate(item))
	}
	return nil
}

func decodeCandidate(v interface{}) Candidate {
	obj, _ := v.(map[string]interface{})
	content, ok := obj["content"].(map[string]interface{})
	if !ok {
		return Candidate{}
	}

	out := &Content{}
	parts, _ := content["parts"].([]interface{})
	for _, p := range parts {
		part, _ := p.(map[string]interface{})
		text, _ := part["text"].(string)
		out.Parts = append(out.Parts, Part{Text: text})
	}
	return Candidate{Content: out}
}

// FirstText returns the text of the first part of the first candidate,
// or an empty string when any link of that chain is absent.
func (r *UpstreamResponse) FirstText() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	content := r.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return ""
	}
	return content.Parts[0].Text
}

// Inbound field names, matched case-sensitively
const (
	userTextField     = "userText"
	systemPromptField = "systemPrompt"
)

// ParseInboundRequest decodes and validates an analyze request body.
// An empty body is treated as an empty object. A systemPrompt that is not a
// string is ignored. Malformed JSON is a 400 validation error here rather than
// an unexpected 500.
func ParseInboundRequest(body []byte) (*InboundRequest, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &ValidationError{Field: "body", Message: "Invalid JSON body", Err: err}
	}

	req := &InboundRequest{}
	if raw, ok := fields[userTextField]; ok {
		if err := json.Unmarshal(raw, &req.UserText); err != nil {
			return nil, &ValidationError{Field: userTextField, Message: MissingUserTextMessage, Err: err}
		}
	}
	if raw, ok := fields[systemPromptField]; ok {
		_ = json.Unmarshal(raw, &req.SystemPrompt)
	}

	if err := ValidateInboundRequest(req); err != nil {
		return nil, err
	}

	return req, nil
}
