package resumes

import (
	"fmt"
	"strings"
)

// maxPromptResumeChars bounds the resume text embedded in prompts.
const maxPromptResumeChars = 20000

func truncateForPrompt(text string) string {
	if len(text) > maxPromptResumeChars {
		return text[:maxPromptResumeChars]
	}
	return text
}

func buildScoringPrompt(resumeText, jobDesc string) string {
	return strings.TrimSpace(fmt.Sprintf(`
You are a resume screening assistant.
Compare the following resume text with the provided Job Description (JD) and give a match score (0-100) and feedback.

Resume:
%s

Job Description:
%s

Return in exactly this format:
Score: XX
Reason: <brief explanation>
`, resumeText, jobDesc))
}

func buildCoverLetterPrompt(resumeText, jobDesc, company, role, tone, notes string) string {
	if tone == "" {
		tone = "professional"
	}
	var b strings.Builder
	b.WriteString("You are a career writing assistant.\n")
	fmt.Fprintf(&b, "Write a %s cover letter for the role of %s at %s, based on the resume and job description below.\n", tone, role, company)
	if notes != "" {
		fmt.Fprintf(&b, "Additional instructions from the candidate: %s\n", notes)
	}
	b.WriteString("\nResume:\n")
	b.WriteString(resumeText)
	b.WriteString("\n\nJob Description:\n")
	b.WriteString(jobDesc)
	b.WriteString("\n\nReturn only the cover letter text, no preamble.")
	return b.String()
}
