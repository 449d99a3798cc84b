package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cover-letter-agent/internal/fallback"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Generate a letter offline from the built-in template",
	Long:  `Produces a letter by plain interpolation with no API key and no network access. Useful as a starting draft or when the model service is unreachable.`,
	RunE:  runTemplate,
}

var (
	tmplJob     string
	tmplProfile string
	tmplOutput  string
)

func init() {
	templateCmd.Flags().StringVarP(&tmplJob, "job", "j", "", "Path to job posting JSON file")
	templateCmd.Flags().StringVarP(&tmplProfile, "profile", "p", "", "Path to user profile JSON file")
	templateCmd.Flags().StringVarP(&tmplOutput, "output", "o", "", "Write the letter to a file instead of stdout")

	_ = templateCmd.MarkFlagRequired("job")
	_ = templateCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(templateCmd)
}

func runTemplate(_ *cobra.Command, _ []string) error {
	var input types.PipelineInput
	if err := readJSONFile(tmplJob, &input.JobPosting); err != nil {
		return fmt.Errorf("failed to load job posting: %w", err)
	}
	if err := readJSONFile(tmplProfile, &input.UserProfile); err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	content := fallback.GenerateTemplateLetter(input)

	if tmplOutput != "" {
		if err := os.WriteFile(tmplOutput, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write letter: %w", err)
		}
		fmt.Printf("Letter written to %s\n", tmplOutput)
		return nil
	}

	fmt.Println(content)
	return nil
}
