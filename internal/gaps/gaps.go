// Package gaps inspects a generation request for missing profile
// information before any model call is made. It gives callers a chance
// to ask the candidate follow-up questions instead of producing a
// letter with holes in it.
package gaps

import (
	"fmt"
	"strings"

	"github.com/jonathan/cover-letter-agent/internal/types"
)

// Category ranks how badly a gap hurts the letter
type Category string

// Gap categories, from blocking to cosmetic
const (
	CategoryRequired    Category = "required"
	CategoryRecommended Category = "recommended"
	CategoryOptional    Category = "optional"
)

// InformationGap describes one missing or weak piece of profile data
type InformationGap struct {
	ID              string   `json:"id"`
	Question        string   `json:"question"`
	Category        Category `json:"category"`
	Context         string   `json:"context"`
	SuggestedAnswer string   `json:"suggested_answer,omitempty"`
}

// Analyze compares a profile against a posting and reports what is
// missing. The result is deterministic and ordered: contact fields
// first, then experience, skills, and education.
func Analyze(job types.JobPosting, profile types.UserProfile) []InformationGap {
	var gaps []InformationGap

	if profile.Email == "" || !strings.Contains(profile.Email, "@") {
		gaps = append(gaps, InformationGap{
			ID:              "email",
			Question:        "What is your email address?",
			Category:        CategoryRequired,
			Context:         "Email is required for the cover letter header",
			SuggestedAnswer: profile.Email,
		})
	}

	if profile.Phone == "" {
		gaps = append(gaps, InformationGap{
			ID:       "phone",
			Question: "What is your phone number?",
			Category: CategoryRequired,
			Context:  "Phone number is required for the cover letter header",
		})
	}

	if profile.Location == "" {
		gaps = append(gaps, InformationGap{
			ID:       "location",
			Question: "What is your location (city, country)?",
			Category: CategoryRecommended,
			Context:  "Location helps personalize your cover letter",
		})
	}

	if job.PositionType.IsEducational() {
		gaps = append(gaps, academicGaps(profile)...)
	} else if len(profile.WorkExperience) == 0 {
		gaps = append(gaps, InformationGap{
			ID:       "work-experience",
			Question: "Do you have any relevant work experience for this position?",
			Category: CategoryRecommended,
			Context:  "Work experience is important for professional positions",
		})
	}

	gaps = append(gaps, skillGaps(job, profile)...)

	if len(profile.Education) == 0 {
		gaps = append(gaps, InformationGap{
			ID:       "education",
			Question: "What is your educational background?",
			Category: CategoryRecommended,
			Context:  "Education information is typically expected in cover letters",
		})
	}

	return gaps
}

// CanProceed reports whether generation may start. Recommended and
// optional gaps degrade quality but never block.
func CanProceed(gaps []InformationGap) bool {
	for _, gap := range gaps {
		if gap.Category == CategoryRequired {
			return false
		}
	}
	return true
}

func academicGaps(profile types.UserProfile) []InformationGap {
	if profile.AcademicContext == nil {
		return []InformationGap{{
			ID:       "academic-context",
			Question: "What degree program are you currently pursuing?",
			Category: CategoryRecommended,
			Context:  "Academic information is important for educational positions",
		}}
	}

	var gaps []InformationGap
	if profile.AcademicContext.University == "" {
		gaps = append(gaps, InformationGap{
			ID:       "university",
			Question: "Which university do you attend?",
			Category: CategoryRecommended,
			Context:  "University name strengthens your application",
		})
	}
	if profile.AcademicContext.ExpectedGraduation == "" {
		gaps = append(gaps, InformationGap{
			ID:       "graduation",
			Question: "When is your expected graduation date?",
			Category: CategoryOptional,
			Context:  "Graduation date helps employers plan",
		})
	}
	return gaps
}

func skillGaps(job types.JobPosting, profile types.UserProfile) []InformationGap {
	if len(profile.Skills) == 0 {
		return []InformationGap{{
			ID:              "skills",
			Question:        "What skills do you have that are relevant to this position?",
			Category:        CategoryRecommended,
			Context:         "Skills help match you to the job requirements",
			SuggestedAnswer: strings.Join(topRequirements(job, 3), ", "),
		}}
	}

	if len(job.Requirements) > 0 && !anySkillMatches(profile.Skills, job.Requirements) {
		return []InformationGap{{
			ID:       "relevant-skills",
			Question: fmt.Sprintf("Do you have experience with: %s?", strings.Join(topRequirements(job, 3), ", ")),
			Category: CategoryOptional,
			Context:  "Adding relevant skills strengthens your application",
		}}
	}

	return nil
}

// anySkillMatches does a case-insensitive substring match in both
// directions, so "Go" matches "3+ years of Go" and vice versa.
func anySkillMatches(skills, requirements []string) bool {
	for _, skill := range skills {
		s := strings.ToLower(skill)
		for _, req := range requirements {
			r := strings.ToLower(req)
			if strings.Contains(r, s) || strings.Contains(s, r) {
				return true
			}
		}
	}
	return false
}

func topRequirements(job types.JobPosting, n int) []string {
	if len(job.Requirements) <= n {
		return job.Requirements
	}
	return job.Requirements[:n]
}
