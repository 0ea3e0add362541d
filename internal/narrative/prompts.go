package narrative

import (
	"fmt"
	"strings"
)

// TeamContext carries the team attributes the prompts describe.
type TeamContext struct {
	Size         int
	Experience   string
	Skills       []string
	DeadlineDays *int
}

// ProblemContext carries one scored problem plus its skill evidence.
type ProblemContext struct {
	Description    string
	RequiredSkills []string
	MissingSkills  []string
	Score          float64
}

func recommendationPrompt(team TeamContext, problem ProblemContext) string {
	deadline := "not specified"
	if team.DeadlineDays != nil {
		deadline = fmt.Sprintf("%d days", *team.DeadlineDays)
	}

	return fmt.Sprintf(`Team Profile:
- Size: %d members
- Experience Level: %s
- Skills: %s
- Project Deadline: %s

Problem Statement:
%s

Match Score: %.2f

Based on the team profile and problem statement above, provide a brief, natural explanation of why this problem might be a good match for the team. Focus on the most relevant aspects like skills match, team size appropriateness, and deadline feasibility.`,
		team.Size, team.Experience, joinOrNone(team.Skills), deadline,
		problem.Description, problem.Score)
}

func skillGapPrompt(team TeamContext, problem ProblemContext) string {
	return fmt.Sprintf(`Team Profile:
- Current Skills: %s
- Experience Level: %s

Problem Requirements:
- Required Skills: %s
- Missing Skills: %s

Based on the team's current skills and the problem requirements, provide a brief analysis of:
1. The skill gaps that need to be addressed
2. How critical each missing skill is for the project
Keep the response concise and actionable.`,
		joinOrNone(team.Skills), team.Experience,
		joinOrNone(problem.RequiredSkills), joinOrNone(problem.MissingSkills))
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
