package app

import (
	"fmt"
	"strings"

	"draftforge/pkg/domain"
)

const (
	outlineSystemPrompt = "You are an expert document planner. Respond with one section title per line, no numbering, no commentary."

	sectionSystemPrompt = "You are an expert technical writer. Write clear, well-structured prose. Respond with the section text only, no headings, no commentary."

	slideSystemPrompt = "You are an expert presentation writer. Respond with one concise bullet point per line, no numbering, no commentary."

	refineSystemPrompt = "You revise existing document content following the user's instruction. Keep the original intent, apply the instruction, and respond with the revised content only."
)

func outlinePrompt(project domain.Project, count int) string {
	var b strings.Builder
	kind := "document sections"
	if project.DocumentType == domain.DocTypeSlide {
		kind = "presentation slides"
	}
	fmt.Fprintf(&b, "Propose exactly %d %s for %q.\n", count, kind, project.Title)
	fmt.Fprintf(&b, "Topic: %s\n", project.Topic)
	if project.Description != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", project.Description)
	}
	return b.String()
}

func contentPrompt(project domain.Project, item domain.ContentItem, instruction string) string {
	var b strings.Builder
	if project.DocumentType == domain.DocTypeSlide {
		fmt.Fprintf(&b, "Write 3-6 bullet points for the slide %q in the presentation %q.\n", item.Title, project.Title)
	} else {
		fmt.Fprintf(&b, "Write the section %q of the document %q.\n", item.Title, project.Title)
	}
	fmt.Fprintf(&b, "Topic: %s\n", project.Topic)
	if project.Description != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", project.Description)
	}
	if prior := priorItemsContext(project, item); prior != "" {
		fmt.Fprintf(&b, "Content written so far:\n%s", prior)
	}
	if instruction = strings.TrimSpace(instruction); instruction != "" {
		fmt.Fprintf(&b, "Follow this instruction: %s\n", instruction)
	}
	return b.String()
}

func refinePrompt(project domain.Project, item domain.ContentItem, instruction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project topic: %s\n", project.Topic)
	if project.DocumentType == domain.DocTypeSlide {
		fmt.Fprintf(&b, "Current bullet points of slide %q:\n", item.Title)
		for _, bullet := range item.Bullets {
			fmt.Fprintf(&b, "- %s\n", bullet)
		}
		b.WriteString("Respond with the revised bullet points, one per line.\n")
	} else {
		fmt.Fprintf(&b, "Current text of section %q:\n%s\n", item.Title, item.Text)
		b.WriteString("Respond with the revised section text.\n")
	}
	fmt.Fprintf(&b, "Instruction: %s\n", strings.TrimSpace(instruction))
	return b.String()
}

// priorItemsContext summarizes already-generated earlier items so new
// content stays consistent with what precedes it.
func priorItemsContext(project domain.Project, current domain.ContentItem) string {
	var b strings.Builder
	for _, item := range project.Items {
		if item.ID == current.ID || item.Order >= current.Order {
			continue
		}
		if !item.HasContent(project.DocumentType) {
			continue
		}
		summary := item.Text
		if project.DocumentType == domain.DocTypeSlide {
			summary = strings.Join(item.Bullets, "; ")
		}
		fmt.Fprintf(&b, "%d. %s: %s\n", item.Order, item.Title, truncateRunes(summary, 280))
	}
	return b.String()
}

func truncateRunes(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "…"
}

// parseLines splits model output into cleaned lines, stripping bullet
// markers and leading numbering.
func parseLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-•* \t")
		line = trimNumberPrefix(line)
		line = strings.Trim(line, "\"")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func trimNumberPrefix(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return line
	}
	if line[i] == '.' || line[i] == ')' || line[i] == ':' {
		return strings.TrimSpace(line[i+1:])
	}
	return line
}
