package models

import (
	"bytes"
	"encoding/json"
)

// ResultHeaders is the fixed column list for extraction results. Every row
// returned by the extract endpoint and every spreadsheet row appended by the
// export endpoint is aligned positionally to this list.
var ResultHeaders = []string{
	"File Name",
	"Full Name",
	"Email",
	"Phone",
	"Location",
	"Current Title",
	"Current Company",
	"Years of Experience",
	"Education",
	"Skills",
	"Languages",
	"Certifications",
	"Summary",
}

// CandidateProfile holds the structured fields extracted from one CV
type CandidateProfile struct {
	FileName        string `json:"file_name"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	CurrentTitle    string `json:"current_title"`
	CurrentCompany  string `json:"current_company"`
	YearsExperience string `json:"years_experience"`
	Education       string `json:"education"`
	Skills          string `json:"skills"`
	Languages       string `json:"languages"`
	Certifications  string `json:"certifications"`
	Summary         string `json:"summary"`
}

// Row returns the profile's values in ResultHeaders order
func (p CandidateProfile) Row() []string {
	return []string{
		p.FileName,
		p.FullName,
		p.Email,
		p.Phone,
		p.Location,
		p.CurrentTitle,
		p.CurrentCompany,
		p.YearsExperience,
		p.Education,
		p.Skills,
		p.Languages,
		p.Certifications,
		p.Summary,
	}
}

// OrderedFields wraps a profile so it marshals as a JSON object keyed by the
// display header names, in ResultHeaders order. This is the single-file
// response shape, where the page renders one table row per field; a plain map
// would serialize with sorted keys and scramble the table.
type OrderedFields CandidateProfile

// OrderedFields returns the profile in the single-file response shape
func (p CandidateProfile) OrderedFields() OrderedFields {
	return OrderedFields(p)
}

func (p OrderedFields) MarshalJSON() ([]byte, error) {
	row := CandidateProfile(p).Row()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, h := range ResultHeaders {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(h)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(row[i])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// ExtractResponse is the multi-file extraction response, one row per input
// file in upload order
type ExtractResponse struct {
	Rows [][]string `json:"rows"`
}

// ExportRequest is the export request body: the page posts back the headers
// and rows it last rendered, verbatim
type ExportRequest struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ExportResponse carries the link to the spreadsheet the rows were appended to
type ExportResponse struct {
	SheetURL string `json:"sheetUrl"`
}
