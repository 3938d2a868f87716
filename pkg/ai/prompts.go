package ai

import (
	"fmt"
	"strings"
)

const (
	// PromptHeader opens every synthesis prompt.
	PromptHeader = "你是一个多模态智能助手。"
	// PromptFooter closes every synthesis prompt.
	PromptFooter = "请根据以上信息生成有用的文字回答。"
	// NoTextInput replaces the text section when the user typed nothing.
	NoTextInput = "[无文本输入]"
)

// BuildPrompt assembles the synthesis prompt from the per-modality summaries
// and the free-form user text. Sections are joined with newlines in a fixed
// order so identical inputs produce the identical prompt.
func BuildPrompt(imageDesc, graphDesc, seriesDesc, userText string) string {
	textSection := NoTextInput
	if text := strings.TrimSpace(userText); text != "" {
		textSection = fmt.Sprintf("[文本] %s", text)
	}

	parts := []string{
		PromptHeader,
		imageDesc,
		graphDesc,
		seriesDesc,
		textSection,
	}

	return strings.Join(parts, "\n") + "\n" + PromptFooter
}
