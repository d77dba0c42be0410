package pkg

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gitlab.com/golang-commonmark/markdown"
)

// Sanitizer 把作者输入转成可以直接渲染的安全内容
type Sanitizer interface {
	// Title 纯文本，去掉所有标签
	Title(s string) string
	// Markdown 渲染 markdown 后再做 HTML 白名单过滤
	Markdown(s string) string
}

type markdownSanitizer struct {
	md     *markdown.Markdown
	strict *bluemonday.Policy
	ugc    *bluemonday.Policy
}

// NewSanitizer 原始 HTML 在渲染阶段就被转义，再由 UGC 策略兜底去掉脚本和事件属性
func NewSanitizer() Sanitizer {
	return &markdownSanitizer{
		md: markdown.New(
			markdown.HTML(false),
			markdown.Linkify(true),
			markdown.Typographer(false),
			markdown.XHTMLOutput(false),
		),
		strict: bluemonday.StrictPolicy(),
		ugc:    bluemonday.UGCPolicy(),
	}
}

func (s *markdownSanitizer) Title(in string) string {
	return strings.TrimSpace(s.strict.Sanitize(strings.TrimSpace(in)))
}

func (s *markdownSanitizer) Markdown(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	rendered := s.md.RenderToString([]byte(in))
	return strings.TrimSpace(s.ugc.Sanitize(rendered))
}
