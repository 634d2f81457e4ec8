// Package model defines the entities produced by the ingestion pipeline.
package model

import (
	"encoding/json"
	"time"
)

// Submission is one applicant's processed form response. Numeric metrics are
// pointers so an unset answer is distinguishable from a literal zero.
type Submission struct {
	ID           int64
	SubmissionID string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Founder
	FounderName       string
	FounderTitle      string
	FounderEmail      string
	FounderPhone      string
	LinkedInURL       string
	FounderExperience []string

	// Company
	CompanyName        string
	Website            string
	Description        string
	Location           string
	LegalStructure     string
	ProblemStatement   string
	SolutionStatement  string
	UniqueValue        string
	CustomerValidation string

	// Metrics
	ActiveUsers   *int64
	PayingUsers   *int64
	CustomerCount *int64
	MRR           *float64

	// Funding
	FundingStage string
	RoundSize    *float64
	Valuation    *float64
	Commitments  *float64
	LeadInvestor string

	PitchDeckURL   string
	ReferralSource string

	// RawResponse retains the provider payload verbatim for audit and replay.
	RawResponse json.RawMessage
}

// Profile is the professional-profile enrichment for one submission.
// Nested collections are kept opaque; the provider's shape is trusted as-is.
type Profile struct {
	ID           int64
	SubmissionID int64
	CreatedAt    time.Time

	FullName string
	Headline string
	Summary  string
	Country  string
	City     string

	Experiences     json.RawMessage
	Education       json.RawMessage
	Skills          json.RawMessage
	Accomplishments json.RawMessage

	ConnectionsCount *int64

	Raw json.RawMessage
}

// TeamMember is one {name, title} entry scraped from a team or about section.
// Title may be empty when no role element was found next to the name.
type TeamMember struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

// ContactInfo holds contact details discovered anywhere in a page.
type ContactInfo struct {
	Emails  []string `json:"emails,omitempty"`
	Phones  []string `json:"phones,omitempty"`
	Address string   `json:"address,omitempty"`
}

// SiteFacts is the website-derived enrichment for one submission.
type SiteFacts struct {
	ID           int64
	SubmissionID int64
	CreatedAt    time.Time

	Title       string
	Description string
	MainContent string

	Technologies []string
	TeamMembers  []TeamMember
	Contact      ContactInfo
	SocialLinks  map[string]string
	MetaTags     map[string]string
	OGTags       map[string]string

	RawHTML string
}
