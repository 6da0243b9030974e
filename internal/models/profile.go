package models

// ProfileResult is the structured candidate profile decoded from a model reply.
// Keys are passed through as the model produced them.
type ProfileResult map[string]any

const (
	KeyProfile      = "profile"
	KeyExperience   = "experience"
	KeySkills       = "skills"
	KeyProfileScore = "profile_score"
	KeyParsingError = "parsing_error"
)

const PlaceholderProfile = "Could not extract information"

// NewPlaceholderProfile returns the result used when no parsing layer succeeded.
func NewPlaceholderProfile(parsingError string) ProfileResult {
	return ProfileResult{
		KeyProfile:      PlaceholderProfile,
		KeyExperience:   []any{},
		KeySkills:       []any{},
		KeyProfileScore: 0,
		KeyParsingError: parsingError,
	}
}
