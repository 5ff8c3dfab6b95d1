package utils

import "strings"

// CleanMarkdown strips the conversational wrapping backends put around a
// narrative: surrounding whitespace and one outer code fence
// (```markdown, ```md, or bare ```). The inner text comes back
// otherwise untouched, so it only runs at render time, never before
// storage.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	for _, fence := range []string{"```markdown", "```md", "```"} {
		if len(cleaned) <= len(fence)+3 {
			continue
		}
		if strings.HasPrefix(cleaned, fence) && strings.HasSuffix(cleaned, "```") {
			cleaned = strings.TrimPrefix(cleaned, fence)
			cleaned = strings.TrimSuffix(cleaned, "```")
			return strings.TrimSpace(cleaned)
		}
	}
	return cleaned
}
