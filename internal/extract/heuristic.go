package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/Jen866/cvapp/internal/models"
)

// HeuristicExtractor extracts profile fields with regular expressions. It is
// the fallback used when no Google Cloud project is configured, and it only
// fills the fields it can find with confidence.
type HeuristicExtractor struct{}

// NewHeuristicExtractor creates a regex-based extractor
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
	yearsRe = regexp.MustCompile(`(?i)(\d{1,2})\+?\s*years?`)
	eduRe   = regexp.MustCompile(`(?m)^.*(University|College|Institute|Academy|School of)[^,\n]*`)
	certRe  = regexp.MustCompile(`(?m)^.*(Certified|Certification|Certificate)[^,\n]*`)
)

// knownSkills is the vocabulary the heuristic matches CV text against. A
// keyword list keeps the fallback dependency-free and predictable.
var knownSkills = []string{
	"Go", "Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Rust",
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis",
	"Docker", "Kubernetes", "Terraform", "AWS", "GCP", "Azure",
	"React", "Angular", "Vue", "Node.js",
	"Linux", "Git", "CI/CD", "REST", "gRPC", "GraphQL",
	"Machine Learning", "Data Analysis", "Project Management", "Agile", "Scrum",
}

var knownLanguages = []string{
	"English", "French", "German", "Spanish", "Portuguese", "Italian", "Dutch",
	"Swahili", "Arabic", "Mandarin", "Chinese", "Japanese", "Korean", "Hindi",
	"Russian",
}

// Extract scans the CV text for recognizable fields
func (h *HeuristicExtractor) Extract(_ context.Context, fileName, text string) (models.CandidateProfile, error) {
	profile := models.CandidateProfile{
		FileName: fileName,
	}

	if m := emailRe.FindString(text); m != "" {
		profile.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		profile.Phone = strings.TrimSpace(m)
	}
	if m := yearsRe.FindStringSubmatch(text); len(m) > 1 {
		profile.YearsExperience = m[1]
	}
	if m := eduRe.FindString(text); m != "" {
		profile.Education = strings.TrimSpace(m)
	}
	for _, m := range certRe.FindAllString(text, -1) {
		// Skip bare section headings like "Certifications"
		if m = strings.TrimSpace(m); !isHeading(m) {
			profile.Certifications = m
			break
		}
	}

	profile.FullName = guessName(text)
	profile.Skills = matchVocabulary(text, knownSkills)
	profile.Languages = matchVocabulary(text, knownLanguages)

	return profile, nil
}

func isHeading(line string) bool {
	switch strings.ToLower(line) {
	case "certification", "certifications", "certificate", "certificates":
		return true
	}
	return false
}

// guessName takes the first short line that is not contact information. CVs
// almost always lead with the candidate's name.
func guessName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if emailRe.MatchString(line) || phoneRe.MatchString(line) {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 || len(line) > 60 {
			continue
		}
		return line
	}
	return ""
}

// matchVocabulary returns the vocabulary entries present in the text as a
// comma-separated list, in vocabulary order
func matchVocabulary(text string, vocabulary []string) string {
	lower := strings.ToLower(text)

	var found []string
	for _, term := range vocabulary {
		if strings.Contains(lower, strings.ToLower(term)) {
			found = append(found, term)
		}
	}

	return strings.Join(found, ", ")
}
