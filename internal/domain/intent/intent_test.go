package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[int]ID{
		1:  EquipmentCombination,
		3:  LiveSituation,
		5:  Meaningless,
		0:  Default,
		-1: Default,
		6:  Default,
		42: Default,
	}
	for raw, want := range cases {
		assert.Equal(t, want, Normalize(raw), "raw=%d", raw)
	}
}

func TestChatflowFor(t *testing.T) {
	routes := Routes{"a", "b", "c", "d"}

	assert.Equal(t, "a", routes.ChatflowFor(EquipmentCombination))
	assert.Equal(t, "b", routes.ChatflowFor(SupportDecision))
	assert.Equal(t, "c", routes.ChatflowFor(LiveSituation))
	assert.Equal(t, "d", routes.ChatflowFor(OtherSupport))
	assert.Equal(t, "d", routes.ChatflowFor(Meaningless))
}

func TestBanner(t *testing.T) {
	got := Banner(LiveSituation, "答案")

	assert.Equal(t, "本次对话已为您匹配【实时战况分析智能体】进行处理，以下是具体回答：\n\n答案", got)
	assert.Equal(t, fallbackDescription, ID(9).Description())
}

func TestBuildPromptEmbedsQuestion(t *testing.T) {
	prompt := BuildPrompt("步枪怎么修？{question}")

	assert.Contains(t, prompt, "用户问题：步枪怎么修？{question}\n")
	assert.True(t, strings.HasPrefix(prompt, "你是一个严格执行分类任务的机器人。"))
	assert.True(t, strings.HasSuffix(prompt, "请输出结果：\n"))
}
