package providers

import (
	_ "github.com/truthlenz/truthlenz/src/ai/gemini"
	_ "github.com/truthlenz/truthlenz/src/ai/openai"
)
