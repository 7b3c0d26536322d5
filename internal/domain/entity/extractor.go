package entity

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var tagPattern = regexp.MustCompile(`<class>(.*?)</class>`)

// ExtractSpans returns every non-overlapping <class> match in left-to-right
// order. Matches whose trimmed text is empty are skipped outright rather than
// stored as empty-text entities, so "<class> </class>" yields no span.
func ExtractSpans(annotated string) []Span {
	matches := tagPattern.FindAllStringSubmatchIndex(annotated, -1)
	spans := make([]Span, 0, len(matches))
	for _, m := range matches {
		text := strings.TrimSpace(annotated[m[2]:m[3]])
		if text == "" {
			continue
		}
		start := utf8.RuneCountInString(annotated[:m[0]])
		end := start + utf8.RuneCountInString(annotated[m[0]:m[1]])
		spans = append(spans, Span{Text: text, Start: start, End: end})
	}
	return spans
}

// BuildExtractionPrompt asks the model to wrap every entity of answer in
// <class> tags without otherwise altering it.
func BuildExtractionPrompt(answer string) string {
	return "请对下面的文本进行命名实体抽取，严格按照以下要求：\n" +
		"1) 保留原文本的完整顺序和内容，不删除任何信息；\n" +
		"2) 识别所有实体（人名、地名、组织、时间、数值、产品、技术术语、概念等）；\n" +
		"3) 将每个实体用 <class>实体内容</class> 标签包裹，注意标签格式必须严格一致；\n" +
		"4) 禁止输出解释、标题或其他多余文字；\n" +
		"5) 仅返回标注后的文本内容。\n\n" +
		"示例格式：<class>COT</class> 是一种 <class>机器学习</class> 方法。\n\n" +
		"待处理文本：\n" + answer + "\n\n" +
		"标注结果："
}
