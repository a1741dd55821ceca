package models

// ElementType classifies a profile element for feedback tagging.
type ElementType string

const (
	ElementEducation      ElementType = "education"
	ElementExperience     ElementType = "experience"
	ElementLocation       ElementType = "location"
	ElementSpecialization ElementType = "specialization"
	ElementConnection     ElementType = "connection"
	ElementSkills         ElementType = "skills"
	ElementBackground     ElementType = "background"
)

// HighlightType is the user-assigned tag on a profile element.
type HighlightType string

const (
	HighlightGood    HighlightType = "good"
	HighlightPoor    HighlightType = "poor"
	HighlightNeutral HighlightType = "neutral"
)

// ProfileElement is a single taggable fact about a candidate (education,
// experience, location, ...). Highlight state is exclusive: an element is
// either good, poor, or neutral.
type ProfileElement struct {
	ID            string        `json:"id"`
	Type          ElementType   `json:"type"`
	Value         string        `json:"value"`
	Highlighted   bool          `json:"highlighted"`
	HighlightType HighlightType `json:"highlightType"`
}

// ConnectionMutual is the connection type that carries a scoring bonus.
const ConnectionMutual = "mutual connection"

// CandidateRecord is one scraped person listing. Immutable once extracted,
// except for the match score annotation applied by the scorer.
type CandidateRecord struct {
	ID                int              `json:"id"`
	Name              string           `json:"name"`
	Title             string           `json:"title,omitempty"`
	Location          string           `json:"location,omitempty"`
	CurrentPosition   string           `json:"currentPosition,omitempty"`
	CurrentWorkplace  string           `json:"currentWorkplace,omitempty"`
	PastPosition1     string           `json:"pastPosition1,omitempty"`
	PastWorkplace1    string           `json:"pastWorkplace1,omitempty"`
	PastPosition2     string           `json:"pastPosition2,omitempty"`
	PastWorkplace2    string           `json:"pastWorkplace2,omitempty"`
	Education         string           `json:"education,omitempty"`
	Specialization    string           `json:"specialization,omitempty"`
	ConnectionType    string           `json:"connectionType,omitempty"`
	MutualConnections string           `json:"mutualConnections,omitempty"`
	ProfileStatus     string           `json:"profileStatus,omitempty"`
	ProfileURL        string           `json:"profileUrl,omitempty"`
	MatchScore        int              `json:"matchScore,omitempty"`
	ProfileElements   []ProfileElement `json:"profileElements,omitempty"`
}

// HasMutualConnection reports whether the candidate shares a mutual
// connection with the searcher.
func (c *CandidateRecord) HasMutualConnection() bool {
	return c.ConnectionType == ConnectionMutual
}
