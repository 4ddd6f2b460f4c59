package extract

import (
	"strings"
	"testing"
)

// TestParseProfile tests JSON extraction from typical LLM replies
func TestParseProfile(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantName string
		wantErr  bool
	}{
		{
			name:     "bare JSON",
			response: `{"full_name": "Jane Doe", "email": "jane@example.com"}`,
			wantName: "Jane Doe",
		},
		{
			name:     "JSON inside markdown fence",
			response: "```json\n{\"full_name\": \"Jane Doe\"}\n```",
			wantName: "Jane Doe",
		},
		{
			name:     "JSON with surrounding prose",
			response: "Here is the extraction:\n{\"full_name\": \"Jane Doe\"}\nLet me know if you need more.",
			wantName: "Jane Doe",
		},
		{
			name:     "no JSON at all",
			response: "I could not read the document.",
			wantErr:  true,
		},
		{
			name:     "malformed JSON",
			response: `{"full_name": }`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := parseProfile(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseProfile() failed: %v", err)
			}
			if profile.FullName != tt.wantName {
				t.Errorf("Expected name %q, got %q", tt.wantName, profile.FullName)
			}
		})
	}
}

// TestBuildExtractionPrompt tests that the prompt carries the CV text and
// demands strict JSON with the profile keys
func TestBuildExtractionPrompt(t *testing.T) {
	prompt := buildExtractionPrompt("JANE DOE CV BODY")

	if !strings.Contains(prompt, "JANE DOE CV BODY") {
		t.Error("Prompt should embed the CV text")
	}
	for _, key := range []string{"full_name", "email", "phone", "years_experience", "skills", "summary"} {
		if !strings.Contains(prompt, key) {
			t.Errorf("Prompt missing field key %q", key)
		}
	}
	if !strings.Contains(prompt, "ONLY the JSON object") {
		t.Error("Prompt should demand a JSON-only reply")
	}
}
