package plan

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripcraft/internal/analyze"
	"tripcraft/internal/extract"
)

// Prompt builders are pure string assembly. They exist to keep prompt text
// out of the orchestration code.

const planJSONShape = `{
  "title": "行程标题",
  "destination": "目的地",
  "totalDays": 3,
  "days": [
    {
      "dayNumber": 1,
      "title": "当天主题",
      "theme": "",
      "activities": [
        {
          "name": "活动名称",
          "description": "",
          "type": "ATTRACTION|RESTAURANT|HOTEL|TRANSPORT|ACTIVITY",
          "startTime": "09:00",
          "endTime": "11:00",
          "location": {"name": "", "address": "", "coordinates": [30.0, 120.0]},
          "estimatedCost": 0,
          "tips": [""]
        }
      ]
    }
  ]
}`

func buildPlanPrompt(contents []extract.ExtractedContent, analysis *analyze.AnalysisResult, req UserRequirements) string {
	var b strings.Builder
	b.WriteString("你是一位资深旅行规划师。请根据以下旅行内容和用户需求，生成一份按天安排的详细行程。\n\n")

	b.WriteString("## 参考内容\n")
	for i, c := range contents {
		fmt.Fprintf(&b, "%d. [%s] %s", i+1, c.Platform, c.Title)
		if c.Description != "" {
			fmt.Fprintf(&b, " — %s", c.Description)
		}
		b.WriteString("\n")
	}

	if analysis != nil {
		b.WriteString("\n## 内容分析\n")
		if len(analysis.Locations) > 0 {
			names := make([]string, 0, len(analysis.Locations))
			for _, l := range analysis.Locations {
				names = append(names, l.Name)
			}
			fmt.Fprintf(&b, "热门地点: %s\n", strings.Join(names, "、"))
		}
		if len(analysis.Activities) > 0 {
			names := make([]string, 0, len(analysis.Activities))
			for _, a := range analysis.Activities {
				names = append(names, a.Name)
			}
			fmt.Fprintf(&b, "推荐活动: %s\n", strings.Join(names, "、"))
		}
		if len(analysis.Themes) > 0 {
			fmt.Fprintf(&b, "主题: %s\n", strings.Join(analysis.Themes, "、"))
		}
	}

	b.WriteString("\n## 用户需求\n")
	fmt.Fprintf(&b, "行程天数: %d 天\n出行人数: %d 人\n", req.DurationDays, req.Travelers)
	if req.Budget > 0 {
		fmt.Fprintf(&b, "预算: %.0f 元\n", req.Budget)
	}
	if len(req.TravelStyle) > 0 {
		fmt.Fprintf(&b, "旅行风格: %s\n", strings.Join(req.TravelStyle, "、"))
	}
	if len(req.Interests) > 0 {
		fmt.Fprintf(&b, "兴趣偏好: %s\n", strings.Join(req.Interests, "、"))
	}
	if len(req.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, "饮食限制: %s\n", strings.Join(req.DietaryRestrictions, "、"))
	}
	if len(req.AccessibilityNeeds) > 0 {
		fmt.Fprintf(&b, "无障碍需求: %s\n", strings.Join(req.AccessibilityNeeds, "、"))
	}
	if req.FreeText != "" {
		fmt.Fprintf(&b, "其他说明: %s\n", req.FreeText)
	}

	fmt.Fprintf(&b, "\n请严格按以下 JSON 格式返回，不要包含任何其他文字:\n%s", planJSONShape)
	return b.String()
}

func buildAdjustmentPrompt(p *TravelPlan, instruction string) string {
	current, _ := json.Marshal(p)

	var b strings.Builder
	b.WriteString("你是一位资深旅行规划师。以下是当前行程的完整 JSON，请根据用户的调整要求重新生成整份行程。\n\n")
	fmt.Fprintf(&b, "## 当前行程\n%s\n\n", current)
	fmt.Fprintf(&b, "## 调整要求\n%s\n\n", instruction)
	fmt.Fprintf(&b, "请严格按以下 JSON 格式返回完整的调整后行程，不要包含任何其他文字:\n%s", planJSONShape)
	return b.String()
}

func buildCommandPrompt(input string) string {
	var b strings.Builder
	b.WriteString("请将用户的自然语言指令解析为结构化命令。\n\n")
	fmt.Fprintf(&b, "用户指令: %s\n\n", input)
	b.WriteString(`请严格按以下 JSON 格式返回:
{"action": "add|remove|move|replace|query", "target": "", "parameters": {}}`)
	return b.String()
}

func buildChatPrompt(message string, p *TravelPlan) string {
	var b strings.Builder
	b.WriteString("你是一位友好的旅行助手。请用中文简洁地回答用户关于行程的问题。\n\n")
	if p != nil {
		current, _ := json.Marshal(p)
		fmt.Fprintf(&b, "## 当前行程\n%s\n\n", current)
	}
	fmt.Fprintf(&b, "## 用户消息\n%s", message)
	return b.String()
}
