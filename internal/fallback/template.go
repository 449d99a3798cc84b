package fallback

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/cover-letter-agent/internal/types"
)

// GenerateTemplateLetter assembles a letter by plain string interpolation,
// with no network access and no LLM involvement. It accepts the request
// language but the template body is English only; that is a known
// limitation of this tier. This is the availability floor: it always
// returns a non-empty letter.
func GenerateTemplateLetter(input types.PipelineInput) string {
	return templateLetter(input, time.Now().Format("2 January 2006"))
}

func templateLetter(input types.PipelineInput, date string) string {
	job := input.JobPosting
	profile := input.UserProfile
	educational := job.PositionType.IsEducational()

	var sb strings.Builder

	// Contact header
	sb.WriteString(profile.Name + "\n")
	contact := profile.Email
	if profile.Phone != "" {
		contact += " | " + profile.Phone
	}
	sb.WriteString(contact + "\n")
	if profile.Location != "" {
		sb.WriteString(profile.Location + "\n")
	}
	sb.WriteString("\n" + date + "\n\n")

	// Recipient block, hiring-manager-first when known
	if job.HiringManager != "" {
		sb.WriteString(job.HiringManager + "\n")
	}
	sb.WriteString(job.CompanyName + "\n")
	if job.CompanyAddress != "" {
		sb.WriteString(job.CompanyAddress + "\n")
	}
	sb.WriteString("\n")

	if job.HiringManager != "" {
		fmt.Fprintf(&sb, "Dear %s,\n\n", job.HiringManager)
	} else {
		sb.WriteString("Dear Hiring Manager,\n\n")
	}

	// Opening paragraph
	fmt.Fprintf(&sb, "I am writing to express my strong interest in the %s position at %s. ",
		job.JobTitle, job.CompanyName)
	if educational {
		fmt.Fprintf(&sb, "As a %s at %s, I am eager to apply my academic knowledge and skills to this %s opportunity.\n\n",
			currentDegree(profile), university(profile), job.PositionType)
	} else {
		fmt.Fprintf(&sb, "With my background in %s, I am confident that I would be a valuable addition to your team.\n\n",
			background(profile))
	}

	// Experience paragraph
	if educational {
		fmt.Fprintf(&sb, "Throughout my academic career, I have developed strong skills in %s.", topSkills(profile))
		if coursework := topCoursework(profile); coursework != "" {
			fmt.Fprintf(&sb, " My coursework in %s has prepared me well for the challenges of this role.", coursework)
		}
		sb.WriteString("\n\n")
	} else if len(profile.WorkExperience) > 0 {
		exp := profile.WorkExperience[0]
		fmt.Fprintf(&sb, "In my previous role as %s at %s, I %s. My expertise in %s aligns well with the requirements for this position.\n\n",
			exp.Title, exp.Company, strings.TrimSuffix(exp.Description, "."), topSkills(profile))
	} else {
		fmt.Fprintf(&sb, "I have developed strong skills in %s that align well with the requirements for this position.\n\n",
			topSkills(profile))
	}

	// Motivation paragraph keyed to the first listed requirement
	fmt.Fprintf(&sb, "I am particularly drawn to %s because of your commitment to %s. I am excited about the opportunity to contribute to your team and grow professionally in this role.\n\n",
		job.CompanyName, firstRequirement(job))

	closing := "experience and skills"
	if educational {
		closing = "academic background and enthusiasm"
	}
	fmt.Fprintf(&sb, "Thank you for considering my application. I look forward to the opportunity to discuss how my %s can contribute to %s's success.\n\n",
		closing, job.CompanyName)

	sb.WriteString("Sincerely,\n" + profile.Name)
	return sb.String()
}

func currentDegree(profile types.UserProfile) string {
	if profile.AcademicContext != nil && profile.AcademicContext.CurrentDegree != "" {
		return profile.AcademicContext.CurrentDegree
	}
	return "student"
}

func university(profile types.UserProfile) string {
	if profile.AcademicContext != nil && profile.AcademicContext.University != "" {
		return profile.AcademicContext.University
	}
	return "university"
}

func background(profile types.UserProfile) string {
	if len(profile.WorkExperience) > 0 && profile.WorkExperience[0].Title != "" {
		return profile.WorkExperience[0].Title
	}
	return "the field"
}

// topSkills returns up to the first three listed skills
func topSkills(profile types.UserProfile) string {
	if len(profile.Skills) == 0 {
		return "relevant areas"
	}
	skills := profile.Skills
	if len(skills) > 3 {
		skills = skills[:3]
	}
	return strings.Join(skills, ", ")
}

// topCoursework returns up to the first two coursework entries
func topCoursework(profile types.UserProfile) string {
	if profile.AcademicContext == nil || len(profile.AcademicContext.RelevantCoursework) == 0 {
		return ""
	}
	coursework := profile.AcademicContext.RelevantCoursework
	if len(coursework) > 2 {
		coursework = coursework[:2]
	}
	return strings.Join(coursework, " and ")
}

func firstRequirement(job types.JobPosting) string {
	if len(job.Requirements) > 0 && job.Requirements[0] != "" {
		return job.Requirements[0]
	}
	return "excellence"
}
