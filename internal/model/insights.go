package model

// Insights is the structured analysis result attached to a document:
// a summary plus skills, experience level, education and highlights.
// KeySkills and Highlights keep the order they were produced in.
type Insights struct {
	Summary          string   `json:"summary"`
	KeySkills        []string `json:"key_skills"`
	ExperienceLevel  string   `json:"experience_level"`
	Education        string   `json:"education"`
	Highlights       []string `json:"highlights"`
	ProcessingMethod string   `json:"processing_method"`
}
