package llm

import (
	"fmt"
	"strings"
)

// GeneralPrompt wraps an open-ended question.
func GeneralPrompt(message string) string {
	return "You are a helpful educational assistant. Please answer this question clearly and educationally: " + message
}

// FallbackPrompt wraps a course question for which no material is available.
func FallbackPrompt(message string) string {
	return "Educational question about " + message
}

// PracticePrompt asks for 5 question/answer pairs from course material.
// chapterInfo is a phrase like " from Chapter 2" or " from all chapters".
func PracticePrompt(course, chapterInfo, material string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on the following course material from %s%s, create 5 practice questions with answers.\n\n", course, chapterInfo)
	sb.WriteString("Course Material:\n")
	sb.WriteString(material)
	sb.WriteString("\n\nPlease format as:\nQ1: [Question]\nA1: [Answer]\n\nQ2: [Question]\nA2: [Answer]\n\netc.")
	return sb.String()
}

// GroundedPrompt asks a student question against course material and any
// uploaded-document context.
func GroundedPrompt(course, chapterInfo, question, context string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a helpful teaching assistant for %s%s.\n\n", course, chapterInfo)
	fmt.Fprintf(&sb, "Student question: %s\n\n", question)
	sb.WriteString("Please answer based on the following course material:\n")
	sb.WriteString(context)
	sb.WriteString("\n\nProvide a clear, educational response that directly addresses the student's question.")
	return sb.String()
}

// ScoringPrompt asks for an evaluation of a student's answers against the
// assignment questions.
func ScoringPrompt(assignment, answers string) string {
	var sb strings.Builder
	sb.WriteString("You are an experienced teacher evaluating a student's work.\n\n")
	sb.WriteString("ASSIGNMENT/QUESTIONS:\n")
	sb.WriteString(assignment)
	sb.WriteString("\n\nSTUDENT'S ANSWERS:\n")
	sb.WriteString(answers)
	sb.WriteString("\n\nPlease provide:\n")
	sb.WriteString("1. Overall score out of 100\n")
	sb.WriteString("2. Detailed feedback for each question/section\n")
	sb.WriteString("3. Specific areas where the student did well\n")
	sb.WriteString("4. Areas that need improvement\n")
	sb.WriteString("5. Suggestions for better answers\n\n")
	sb.WriteString("Be constructive and helpful in your feedback.")
	return sb.String()
}

// SubmissionPrompt asks for a machine-parseable score and feedback for a
// submitted solution. The response must follow the SCORE/FEEDBACK convention
// understood by ParseScore.
func SubmissionPrompt(assignment, solution string) string {
	var sb strings.Builder
	sb.WriteString("You are an experienced teacher grading a student's submitted solution.\n\n")
	sb.WriteString("ASSIGNMENT/QUESTIONS:\n")
	sb.WriteString(assignment)
	sb.WriteString("\n\nSTUDENT'S SOLUTION:\n")
	sb.WriteString(solution)
	sb.WriteString("\n\nRespond in exactly this format:\n")
	sb.WriteString("SCORE: <number>/100\n")
	sb.WriteString("FEEDBACK: <detailed feedback on the solution>")
	return sb.String()
}

// Clip truncates s to at most n runes. It is the lossy cap applied when
// material text is embedded into a prompt.
func Clip(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
