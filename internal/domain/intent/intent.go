package intent

import (
	"context"
	"strings"
)

// ID identifies one of the five intent categories.
type ID int

const (
	EquipmentCombination ID = 1
	SupportDecision      ID = 2
	LiveSituation        ID = 3
	OtherSupport         ID = 4
	Meaningless          ID = 5

	Default = OtherSupport
)

const fallbackDescription = "后装保障智能体"

var descriptions = map[ID]string{
	EquipmentCombination: "装备关联与组合推荐智能体",
	SupportDecision:      "后装保障决策支持智能体",
	LiveSituation:        "实时战况分析智能体",
	OtherSupport:         "其他后装保障智能体",
	Meaningless:          "无意义内容处理智能体",
}

// Normalize maps a raw classifier value into the defined range; anything
// outside 1..5 resolves to the default category.
func Normalize(raw int) ID {
	id := ID(raw)
	if id < EquipmentCombination || id > Meaningless {
		return Default
	}
	return id
}

// Description names the agent that handles the intent.
func (id ID) Description() string {
	if d, ok := descriptions[id]; ok {
		return d
	}
	return fallbackDescription
}

// Banner prefixes the first answer of a conversation with the matched agent.
func Banner(id ID, annotated string) string {
	return "本次对话已为您匹配【" + id.Description() + "】进行处理，以下是具体回答：\n\n" + annotated
}

// Classifier sends a classification prompt to a model and returns the raw
// intent value it produced.
type Classifier interface {
	Classify(ctx context.Context, prompt string) (int, error)
}

// Routes holds the chatflow id for each routed intent. Categories 4 and 5
// share the fourth chatflow.
type Routes [4]string

// ChatflowFor returns the chatflow id serving the intent.
func (r Routes) ChatflowFor(id ID) string {
	switch id {
	case EquipmentCombination:
		return r[0]
	case SupportDecision:
		return r[1]
	case LiveSituation:
		return r[2]
	default:
		return r[3]
	}
}

// BuildPrompt renders the fixed classification prompt around the question.
func BuildPrompt(question string) string {
	return strings.Replace(promptTemplate, "{question}", question, 1)
}

const promptTemplate = `你是一个严格执行分类任务的机器人。输出要求：
1. 必须输出合法的 JSON 格式，不带任何额外文字；
2. 格式固定为：{"intent_id": 整数}；
3. 整数必须是 1、2、3、4 或 5 之一。

意图定义如下（明确边界）：
1. 装备关联与组合推荐：涉及装备之间的搭配、组合、协同使用等问题（如装备A和什么搭配好、装备B与装备C的协同方式）；
2. 后装保障决策支持：涉及后装保障的策略制定、方案选择等决策类问题（如某地区补给方案如何制定、维修优先级决策）；
3. 实时战况：涉及战场实时态势、兵力部署、敌情动态等实时信息查询/分析；
4. 其他后装保障（维修、保养、补给）：涉及具体的维修方法、保养流程、补给操作等执行类问题；
5. 无意义内容（乱码或无效文本）：无法理解的乱码、无实际含义的文本。

示例（覆盖所有意图）：
用户：步枪怎么修？
输出：{"intent_id": 4}

用户：坦克和什么装备搭配协同作战好？
输出：{"intent_id": 1}

用户：前线部队补给方案怎么选？
输出：{"intent_id": 2}

用户：当前敌方坦克的部署位置？
输出：{"intent_id": 3}

用户：asdf123乱码文本
输出：{"intent_id": 5}

用户问题：{question}
请输出结果：
`
