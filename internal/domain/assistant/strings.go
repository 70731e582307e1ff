package assistant

// catalog holds the user-facing strings for one language. Everything the
// pipeline can say without a model reply lives here.
type catalog struct {
	needMessage      string
	needLocation     string
	locationNotFound string
	fallbackReply    string
}

var catalogs = map[string]catalog{
	"en": {
		needMessage:      "Please tell me what you'd like to know.",
		needLocation:     "I need a location to help with that. Please allow location access or tell me a city.",
		locationNotFound: "I couldn't find that place. Please try another city name.",
		fallbackReply:    "Failed to generate a plan. Please try again.",
	},
	"ja": {
		needMessage:      "ご質問を入力してください。",
		needLocation:     "位置情報が必要です。現在地の使用を許可してください。",
		locationNotFound: "その場所が見つかりませんでした。別の都市名を試してください。",
		fallbackReply:    "プランの生成に失敗しました。もう一度お試しください。",
	},
}

// normalizeLang collapses any input to one of the two supported languages.
func normalizeLang(lang string) string {
	if lang == "ja" {
		return "ja"
	}
	return "en"
}

func catalogFor(lang string) catalog {
	return catalogs[normalizeLang(lang)]
}
