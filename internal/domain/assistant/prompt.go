package assistant

import (
	"fmt"
	"strconv"
)

// Theme words are folded into the model's role line. Unknown themes fall back
// to the general wording rather than failing.
var themeRolesEN = map[string]string{
	"general":     "weather-savvy lifestyle",
	"travel":      "travel planning",
	"fashion":     "fashion and outfit",
	"sports":      "sports and outdoor activity",
	"music":       "music and live event",
	"agriculture": "agriculture and gardening",
	"outings":     "day trip and outing",
}

var themeRolesJA = map[string]string{
	"general":     "天気に詳しい生活",
	"travel":      "旅行プラン",
	"fashion":     "ファッション",
	"sports":      "スポーツ・アウトドア",
	"music":       "音楽・イベント",
	"agriculture": "農業・ガーデニング",
	"outings":     "お出かけ",
}

// composePrompt renders the instruction handed to the model. It is a pure
// function: identical inputs yield byte-identical output.
func composePrompt(message, place, theme string, report WeatherReport, lang string) string {
	if normalizeLang(lang) == "ja" {
		return composePromptJA(message, place, theme, report)
	}
	return composePromptEN(message, place, theme, report)
}

func composePromptEN(message, place, theme string, report WeatherReport) string {
	role, ok := themeRolesEN[theme]
	if !ok {
		role = themeRolesEN["general"]
	}
	daypart := "night"
	if report.IsDay {
		daypart = "daytime"
	}
	return fmt.Sprintf(`You are a %s advisor AI. Based on the following, give a short, friendly suggestion in English.

- User request: %s
- Weather information:
  City: %s (%s, %s)
  Temperature: %s°C (feels like %s°C)
  Humidity: %d%%
  Wind: %s km/h
  Condition: %s
  Time: %s

Output format:
1) Recommended places/activities
2) Outfit and items to bring
3) Weather-related cautions
`,
		role,
		message,
		place, report.Region, report.Country,
		num(report.TempC), num(report.FeelsLikeC),
		report.Humidity,
		num(report.WindKph),
		report.Condition,
		daypart,
	)
}

func composePromptJA(message, place, theme string, report WeatherReport) string {
	role, ok := themeRolesJA[theme]
	if !ok {
		role = themeRolesJA["general"]
	}
	daypart := "夜"
	if report.IsDay {
		daypart = "昼"
	}
	return fmt.Sprintf(`あなたは%sアドバイザーAIです。以下の情報に基づいて、短く親しみやすい提案を日本語でしてください。

- ユーザーのリクエスト: %s
- 天気情報:
  都市: %s (%s, %s)
  気温: %s°C (体感 %s°C)
  湿度: %d%%
  風速: %s km/h
  状況: %s
  昼/夜: %s

出力フォーマット:
1) おすすめの場所やアクティビティ
2) 服装・持ち物のアドバイス
3) 天気に関する注意点
`,
		role,
		message,
		place, report.Region, report.Country,
		num(report.TempC), num(report.FeelsLikeC),
		report.Humidity,
		num(report.WindKph),
		report.Condition,
		daypart,
	)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
