package assistant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComposePromptEnglish(t *testing.T) {
	report := tokyoReport()
	prompt := composePrompt("What should I wear today?", "Tokyo", "travel", report, "en")

	require.Contains(t, prompt, "travel planning advisor AI")
	require.Contains(t, prompt, "User request: What should I wear today?")
	require.Contains(t, prompt, "City: Tokyo (Tokyo, Japan)")
	require.Contains(t, prompt, "Temperature: 22°C (feels like 21°C)")
	require.Contains(t, prompt, "Wind: 12 km/h")
	require.Contains(t, prompt, "Condition: Partly cloudy")
	require.Contains(t, prompt, "Time: daytime")
	require.Contains(t, prompt, "1) Recommended places/activities")
	require.Contains(t, prompt, "2) Outfit and items to bring")
	require.Contains(t, prompt, "3) Weather-related cautions")
}

func TestComposePromptJapanese(t *testing.T) {
	report := tokyoReport()
	report.IsDay = false
	prompt := composePrompt("今日は何を着ればいい？", "東京", "fashion", report, "ja")

	require.Contains(t, prompt, "ファッションアドバイザーAI")
	require.Contains(t, prompt, "ユーザーのリクエスト: 今日は何を着ればいい？")
	require.Contains(t, prompt, "都市: 東京 (Tokyo, Japan)")
	require.Contains(t, prompt, "気温: 22°C (体感 21°C)")
	require.Contains(t, prompt, "昼/夜: 夜")
	require.Contains(t, prompt, "1) おすすめの場所やアクティビティ")
}

func TestComposePromptUnknownThemeFallsBack(t *testing.T) {
	prompt := composePrompt("hi", "Tokyo", "astrology", tokyoReport(), "en")
	require.Contains(t, prompt, "weather-savvy lifestyle advisor AI")
}

func TestComposePromptIsPure(t *testing.T) {
	report := tokyoReport()
	first := composePrompt("plans?", "Tokyo", "outings", report, "en")
	second := composePrompt("plans?", "Tokyo", "outings", report, "en")
	require.Equal(t, first, second)
}

func TestNumFormatting(t *testing.T) {
	require.Equal(t, "22", num(22))
	require.Equal(t, "22.5", num(22.5))
	require.Equal(t, "-3.1", num(-3.1))
	require.Equal(t, "0", num(0))
}
