package types

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	// MinClientRunes is the length a client name must exceed to be kept.
	MinClientRunes = 2
	// MaxSummaryRunes bounds a mission summary.
	MaxSummaryRunes = 1000
	// MaxPreviewRunes bounds the raw text preview.
	MaxPreviewRunes = 1000
)

// Source tags identify the strategy that produced a candidate.
const (
	SourceBlocks      = "blocks"
	SourcePattern     = "pattern"
	SourceKnownClient = "known_client"
	SourceTriplet     = "triplet"
	SourceVerified    = "verified"
)

// MissionCandidate is one employment/consulting engagement proposed by a strategy.
type MissionCandidate struct {
	Client          string    `json:"client" validate:"required,client"`
	Start           DateBound `json:"date_debut"`
	End             DateBound `json:"date_fin"`
	Role            string    `json:"poste,omitempty"`
	Summary         string    `json:"resume" validate:"max=1000"`
	TechnicalSkills []string  `json:"langages_techniques" validate:"max=10"`
	SourceStrategy  string    `json:"-"`
}

// Valid reports whether the candidate names a usable client.
func (m MissionCandidate) Valid() bool {
	return utf8.RuneCountInString(strings.TrimSpace(m.Client)) > MinClientRunes
}

// IsVerified reports whether the candidate comes from the verified-missions table.
func (m MissionCandidate) IsVerified() bool {
	return m.SourceStrategy == SourceVerified
}

// Contact holds the first email and phone found in a document.
type Contact struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"telephone,omitempty"`
}

// CVAnalysis is the terminal output of one analysis.
type CVAnalysis struct {
	Consultant       string             `json:"consultant"`
	Missions         []MissionCandidate `json:"missions" validate:"dive"`
	TechnicalSkills  []string           `json:"langages_techniques" validate:"max=25"`
	FunctionalSkills []string           `json:"competences_fonctionnelles" validate:"max=10"`
	Contact          Contact            `json:"informations_generales"`
	RawPreview       string             `json:"texte_brut" validate:"max=1000"`
}

// NewCVAnalysis returns an analysis with every list initialised so it serialises as [].
func NewCVAnalysis(consultant string) *CVAnalysis {
	return &CVAnalysis{
		Consultant:       consultant,
		Missions:         []MissionCandidate{},
		TechnicalSkills:  []string{},
		FunctionalSkills: []string{},
	}
}

// Validate validates the CVAnalysis bounds using the validator.
func (a *CVAnalysis) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("client", validClient); err != nil {
		return err
	}
	return validate.Struct(a)
}

func validClient(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) > MinClientRunes
}
