package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Jen866/cvapp/internal/llm"
	"github.com/Jen866/cvapp/internal/models"
)

// Extractor turns the plain text of one CV into a structured profile
type Extractor interface {
	Extract(ctx context.Context, fileName, text string) (models.CandidateProfile, error)
}

// GeminiExtractor extracts profiles with Gemini on Vertex AI
type GeminiExtractor struct {
	llmClient *llm.VertexAIClient
}

// NewGeminiExtractor creates a Gemini-backed extractor
func NewGeminiExtractor(llmClient *llm.VertexAIClient) *GeminiExtractor {
	return &GeminiExtractor{
		llmClient: llmClient,
	}
}

// Extract prompts the model for the profile fields and parses its JSON reply
func (g *GeminiExtractor) Extract(ctx context.Context, fileName, text string) (models.CandidateProfile, error) {
	prompt := buildExtractionPrompt(text)

	response, err := g.llmClient.GenerateContent(ctx, prompt)
	if err != nil {
		return models.CandidateProfile{}, fmt.Errorf("failed to get LLM response: %w", err)
	}

	profile, err := parseProfile(response)
	if err != nil {
		return models.CandidateProfile{}, fmt.Errorf("failed to parse profile: %w", err)
	}

	profile.FileName = fileName
	return profile, nil
}

// buildExtractionPrompt creates the field-extraction prompt for the LLM
func buildExtractionPrompt(cvText string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert recruiter extracting structured data from a CV. Read the CV below and fill in every field you can find.\n\n")

	sb.WriteString("## CV CONTENT\n")
	sb.WriteString(cvText)
	sb.WriteString("\n\n")

	sb.WriteString("## INSTRUCTIONS\n")
	sb.WriteString("Provide the extracted fields in the following JSON format:\n")
	sb.WriteString("{\n")
	sb.WriteString(`  "full_name": "<candidate's full name>",` + "\n")
	sb.WriteString(`  "email": "<email address>",` + "\n")
	sb.WriteString(`  "phone": "<phone number>",` + "\n")
	sb.WriteString(`  "location": "<city and country>",` + "\n")
	sb.WriteString(`  "current_title": "<most recent job title>",` + "\n")
	sb.WriteString(`  "current_company": "<most recent employer>",` + "\n")
	sb.WriteString(`  "years_experience": "<total years of professional experience, as a number>",` + "\n")
	sb.WriteString(`  "education": "<highest degree and institution>",` + "\n")
	sb.WriteString(`  "skills": "<comma-separated list of key skills>",` + "\n")
	sb.WriteString(`  "languages": "<comma-separated list of spoken languages>",` + "\n")
	sb.WriteString(`  "certifications": "<comma-separated list of certifications>",` + "\n")
	sb.WriteString(`  "summary": "<one-sentence professional summary>"` + "\n")
	sb.WriteString("}\n\n")
	sb.WriteString("Use an empty string for any field the CV does not mention. Do not invent values.\n")
	sb.WriteString("Return ONLY the JSON object, no additional text.\n")

	return sb.String()
}

// parseProfile extracts the profile JSON from the LLM response
func parseProfile(response string) (models.CandidateProfile, error) {
	// Find JSON in response (in case there's extra text)
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 {
		return models.CandidateProfile{}, fmt.Errorf("no JSON found in response")
	}

	jsonStr := response[startIdx : endIdx+1]

	var profile models.CandidateProfile
	if err := json.Unmarshal([]byte(jsonStr), &profile); err != nil {
		return models.CandidateProfile{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return profile, nil
}
