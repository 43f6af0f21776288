package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	aicore "github.com/truthlenz/truthlenz/src/ai/core"
	_ "github.com/truthlenz/truthlenz/src/ai/providers"
	"github.com/truthlenz/truthlenz/src/verifier/data"
	"github.com/truthlenz/truthlenz/src/verifier/engine"
	"github.com/truthlenz/truthlenz/src/verifier/types"
)

var (
	contentFlag = flag.String("content", "The sky is blue.", "Content to verify")
	kindFlag    = flag.String("kind", "text", "Content kind: text|url")
	chainFlag   = flag.String("chain", "gemini-1.5-flash,gemini-1.5-pro", "Ordered model chain")
	timeoutFlag = flag.Duration("timeout", 60*time.Second, "Per-model timeout")
)

// Runs one verification through the configured chain without touching MySQL
// or redis. Useful for checking keys and model availability.
func main() {
	log.SetFlags(0)
	flag.Parse()

	chain := aicore.ParseChain(*chainFlag, "gemini")
	if len(chain) == 0 {
		log.Fatal("empty model chain")
	}

	gateway, err := aicore.NewGateway(aicore.FactoryConfig{
		GeminiKey: os.Getenv("GEMINI_API_KEY"),
		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
		Timeout:   *timeoutFlag,
	}, *timeoutFlag, chain)
	if err != nil {
		log.Fatalf("gateway: %v", err)
	}

	eng := engine.New(gateway, (*data.CacheStore)(nil), (*data.FeedbackStore)(nil), nil, engine.Chains{
		Text: chain,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*(*timeoutFlag))
	defer cancel()

	body, err := eng.Verify(ctx, types.VerificationRequest{
		Content: *contentFlag,
		Type:    *kindFlag,
	})
	if err != nil {
		log.Fatalf("verify: %v", err)
	}

	var pretty map[string]any
	if err := json.Unmarshal(body, &pretty); err == nil {
		out, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println(string(out))
		return
	}
	fmt.Println(string(body))
}
