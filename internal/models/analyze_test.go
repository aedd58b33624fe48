package models

import (
	"encoding/json"
	"testing"
)

func TestParseInboundRequest(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantErr      bool
		wantField    string
		userText     string
		systemPrompt string
	}{
		{name: "user text only", body: `{"userText":"hello"}`, userText: "hello"},
		{name: "with system prompt", body: `{"userText":"hello","systemPrompt":"be brief"}`, userText: "hello", systemPrompt: "be brief"},
		{name: "non-string system prompt ignored", body: `{"userText":"hello","systemPrompt":42}`, userText: "hello"},
		{name: "empty body", body: "", wantErr: true, wantField: "userText"},
		{name: "empty object", body: `{}`, wantErr: true, wantField: "userText"},
		{name: "null body", body: `null`, wantErr: true, wantField: "userText"},
		{name: "empty user text", body: `{"userText":""}`, wantErr: true, wantField: "userText"},
		{name: "null user text", body: `{"userText":null}`, wantErr: true, wantField: "userText"},
		{name: "numeric user text", body: `{"userText":123}`, wantErr: true, wantField: "userText"},
		{name: "object user text", body: `{"userText":{"a":1}}`, wantErr: true, wantField: "userText"},
		{name: "array user text", body: `{"userText":["hi"]}`, wantErr: true, wantField: "userText"},
		{name: "malformed json", body: `{"userText":`, wantErr: true, wantField: "body"},
		{name: "array body", body: `["hello"]`, wantErr: true, wantField: "body"},
		{name: "lowercase key", body: `{"usertext":"hello"}`, wantErr: true, wantField: "userText"},
		{name: "uppercase key", body: `{"USERTEXT":"hello"}`, wantErr: true, wantField: "userText"},
		{name: "system prompt key is case sensitive", body: `{"userText":"hello","systemprompt":"x"}`, userText: "hello"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := ParseInboundRequest([]byte(tc.body))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got request %+v", req)
				}
				ve, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("Expected *ValidationError, got %T", err)
				}
				if ve.Field != tc.wantField {
					t.Errorf("Expected field %q, got %q", tc.wantField, ve.Field)
				}
				if tc.wantField == "userText" && ve.Message != MissingUserTextMessage {
					t.Errorf("Expected message %q, got %q", MissingUserTextMessage, ve.Message)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if req.UserText != tc.userText {
				t.Errorf("Expected userText %q, got %q", tc.userText, req.UserText)
			}
			if req.SystemPrompt != tc.systemPrompt {
				t.Errorf("Expected systemPrompt %q, got %q", tc.systemPrompt, req.SystemPrompt)
			}
		})
	}
}

func TestValidateInboundRequestNil(t *testing.T) {
	if err := ValidateInboundRequest(nil); !IsValidationError(err) {
		t.Errorf("Expected validation error for nil request, got %v", err)
	}
}

func TestNewUpstreamPayloadShape(t *testing.T) {
	payload := NewUpstreamPayload(&InboundRequest{UserText: "hello"})

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	expected := `{"contents":[{"parts":[{"text":"hello"}]}],"systemInstruction":{"parts":[{"text":""}]},"generationConfig":{"responseMimeType":"application/json"}}`
	if string(data) != expected {
		t.Errorf("Unexpected payload\n got: %s\nwant: %s", data, expected)
	}
}

func TestNewUpstreamPayloadSystemPrompt(t *testing.T) {
	payload := NewUpstreamPayload(&InboundRequest{UserText: "hello", SystemPrompt: "reply in JSON"})

	if got := payload.SystemInstruction.Parts[0].Text; got != "reply in JSON" {
		t.Errorf("Expected system instruction 'reply in JSON', got %q", got)
	}
	if got := payload.Contents[0].Parts[0].Text; got != "hello" {
		t.Errorf("Expected user text 'hello', got %q", got)
	}
}

func TestUpstreamResponseFirstText(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"full chain", `{"candidates":[{"content":{"parts":[{"text":"world"},{"text":"ignored"}]}}]}`, "world"},
		{"missing candidates", `{"usageMetadata":{}}`, ""},
		{"empty candidates", `{"candidates":[]}`, ""},
		{"missing content", `{"candidates":[{"finishReason":"SAFETY"}]}`, ""},
		{"null content", `{"candidates":[{"content":null}]}`, ""},
		{"missing parts", `{"candidates":[{"content":{}}]}`, ""},
		{"missing text", `{"candidates":[{"content":{"parts":[{}]}}]}`, ""},
		{"array document", `[]`, ""},
		{"null document", `null`, ""},
		{"string document", `"hello"`, ""},
		{"candidates object", `{"candidates":{}}`, ""},
		{"null candidate", `{"candidates":[null]}`, ""},
		{"content string", `{"candidates":[{"content":"hello"}]}`, ""},
		{"parts object", `{"candidates":[{"content":{"parts":{"text":"hello"}}}]}`, ""},
		{"numeric text", `{"candidates":[{"content":{"parts":[{"text":5}]}}]}`, ""},
		{"first part without text", `{"candidates":[{"content":{"parts":[7,{"text":"later"}]}}]}`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var resp UpstreamResponse
			if err := json.Unmarshal([]byte(tc.body), &resp); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if got := resp.FirstText(); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}

	t.Run("not json", func(t *testing.T) {
		var resp UpstreamResponse
		if err := json.Unmarshal([]byte(`not json`), &resp); err == nil {
			t.Error("Expected error for a body that is not JSON")
		}
	})

	var nilResp *UpstreamResponse
	if got := nilResp.FirstText(); got != "" {
		t.Errorf("Expected empty text for nil response, got %q", got)
	}
}
