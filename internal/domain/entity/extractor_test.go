package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSpansRuneOffsets(t *testing.T) {
	spans := ExtractSpans("<class>COT</class> 是一种 <class>机器学习</class> 方法。")

	require.Len(t, spans, 2)
	assert.Equal(t, Span{Text: "COT", Start: 0, End: 18}, spans[0])
	assert.Equal(t, Span{Text: "机器学习", Start: 23, End: 42}, spans[1])
}

func TestExtractSpansTrimsAndSkipsBlank(t *testing.T) {
	spans := ExtractSpans("a<class>  坦克 </class>b<class>   </class>c<class></class>")

	require.Len(t, spans, 1)
	assert.Equal(t, "坦克", spans[0].Text)
	assert.Equal(t, 1, spans[0].Start)
}

func TestExtractSpansIsNonGreedyAndLineBound(t *testing.T) {
	spans := ExtractSpans("<class>A</class> and <class>B</class>\n<class>C\n</class>")

	require.Len(t, spans, 2)
	assert.Equal(t, "A", spans[0].Text)
	assert.Equal(t, "B", spans[1].Text)
}

func TestExtractSpansNoTags(t *testing.T) {
	assert.Empty(t, ExtractSpans("plain answer"))
	assert.NotNil(t, ExtractSpans(""))
}

func TestBuildExtractionPrompt(t *testing.T) {
	prompt := BuildExtractionPrompt("步枪需要保养")

	assert.Contains(t, prompt, "待处理文本：\n步枪需要保养\n\n标注结果：")
	assert.Contains(t, prompt, "<class>实体内容</class>")
}
