package evidence

import (
	"fmt"
	"strings"

	"github.com/jonathan/cover-letter-agent/internal/types"
)

// ProfileText renders a profile as the plain-text form sent to the model.
// Section headers match the source types the mapping stage may cite.
func ProfileText(profile types.UserProfile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Name: %s\nEmail: %s\nPhone: %s\nLocation: %s\n",
		profile.Name, profile.Email, profile.Phone, profile.Location)

	if len(profile.Skills) > 0 {
		fmt.Fprintf(&sb, "\nSkills: %s\n", strings.Join(profile.Skills, ", "))
	}

	if len(profile.WorkExperience) > 0 {
		sb.WriteString("\nWORK EXPERIENCE:\n")
		for i, exp := range profile.WorkExperience {
			end := exp.EndDate
			if exp.IsOngoing || end == "" {
				end = "Present"
			}
			fmt.Fprintf(&sb, "%d. %s at %s (%s - %s)\n   %s\n",
				i+1, exp.Title, exp.Company, exp.StartDate, end, exp.Description)
		}
	}

	if len(profile.Education) > 0 {
		sb.WriteString("\nEDUCATION:\n")
		for i, edu := range profile.Education {
			fmt.Fprintf(&sb, "%d. %s at %s (%s)\n", i+1, edu.Degree, edu.Institution, edu.GraduationDate)
		}
	}

	if len(profile.Projects) > 0 {
		sb.WriteString("\nPROJECTS:\n")
		for i, p := range profile.Projects {
			fmt.Fprintf(&sb, "%d. %s\n   %s\n", i+1, p.Title, p.Description)
		}
	}

	if ac := profile.AcademicContext; ac != nil {
		fmt.Fprintf(&sb, "\nACADEMIC: %s at %s, expected %s",
			ac.CurrentDegree, ac.University, ac.ExpectedGraduation)
		if len(ac.RelevantCoursework) > 0 {
			fmt.Fprintf(&sb, "; coursework: %s", strings.Join(ac.RelevantCoursework, ", "))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
