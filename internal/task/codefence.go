package task

import "strings"

// extractCode takes the first triple-backtick fenced block's inner text
// from an LM response, stripping an optional language tag on the opening
// fence line. Absent any fence, returns the full trimmed response.
func extractCode(response string) string {
	const fence = "```"

	start := strings.Index(response, fence)
	if start == -1 {
		return strings.TrimSpace(response)
	}

	afterOpen := start + len(fence)
	lineEnd := strings.IndexByte(response[afterOpen:], '\n')
	if lineEnd == -1 {
		return strings.TrimSpace(response)
	}
	bodyStart := afterOpen + lineEnd + 1

	end := strings.Index(response[bodyStart:], fence)
	if end == -1 {
		return strings.TrimSpace(response[bodyStart:])
	}

	return strings.TrimSpace(response[bodyStart : bodyStart+end])
}
