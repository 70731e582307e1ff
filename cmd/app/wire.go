//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/atmos-assistant/internal/bootstrap"
	"github.com/yanqian/atmos-assistant/internal/domain/assistant"
	"github.com/yanqian/atmos-assistant/internal/domain/speech"
	"github.com/yanqian/atmos-assistant/internal/infra/config"
	"github.com/yanqian/atmos-assistant/internal/infra/llm/gemini"
	ttsopenai "github.com/yanqian/atmos-assistant/internal/infra/tts/openai"
	httpiface "github.com/yanqian/atmos-assistant/internal/interface/http"
	"github.com/yanqian/atmos-assistant/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAssistantConfig,
		provideWeatherBackend,
		provideWeatherProvider,
		provideGeocoder,
		provideGeminiClient,
		provideSpeechClient,
		assistant.NewService,
		speech.NewService,
		wire.Bind(new(assistant.ModelClient), new(*gemini.Client)),
		wire.Bind(new(speech.Synthesizer), new(*ttsopenai.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
