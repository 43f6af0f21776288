package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Candidate names one provider/model pair in a fallback chain.
type Candidate struct {
	Provider string
	Model    string
}

func (c Candidate) String() string {
	return c.Provider + ":" + c.Model
}

// ParseChain parses an ordered chain spec such as
// "gemini:gemini-1.5-flash,gemini:gemini-1.5-pro,openai:gpt-4o-mini".
// Entries without an explicit provider fall back to defaultProvider.
func ParseChain(spec, defaultProvider string) []Candidate {
	var chain []Candidate
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		provider := defaultProvider
		model := entry
		if idx := strings.IndexByte(entry, ':'); idx >= 0 {
			provider = strings.TrimSpace(entry[:idx])
			model = strings.TrimSpace(entry[idx+1:])
		}
		if model == "" {
			continue
		}
		chain = append(chain, Candidate{Provider: provider, Model: model})
	}
	return chain
}

// Gateway drives ordered fallback across candidate models. Every candidate is
// treated as unreliable: transport failures, non-2xx statuses, empty replies
// and unparseable output all advance the chain. Only after the last candidate
// fails does the call surface an error.
type Gateway struct {
	clients map[string]Client
	timeout time.Duration
}

// NewGateway builds clients for every provider named in the chains and wires
// them into a gateway with the given per-call timeout.
func NewGateway(cfg FactoryConfig, timeout time.Duration, chains ...[]Candidate) (*Gateway, error) {
	clients := map[string]Client{}
	for _, chain := range chains {
		for _, cand := range chain {
			name := strings.ToLower(cand.Provider)
			if _, ok := clients[name]; ok {
				continue
			}
			providerCfg := cfg
			providerCfg.Provider = name
			client, err := NewClient(providerCfg)
			if err != nil {
				return nil, err
			}
			clients[name] = client
		}
	}
	if len(clients) == 0 {
		return nil, errors.New("ai: no providers configured")
	}
	return NewGatewayWithClients(clients, timeout), nil
}

// NewGatewayWithClients wires pre-built clients, mainly for tests.
func NewGatewayWithClients(clients map[string]Client, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Gateway{clients: clients, timeout: timeout}
}

// Analyze walks the chain in order and returns the first successfully
// extracted JSON object.
func (g *Gateway) Analyze(ctx context.Context, chain []Candidate, system string, parts []Part) (json.RawMessage, error) {
	if len(chain) == 0 {
		return nil, errors.New("ai: empty model chain")
	}

	var lastErr error
	for _, cand := range chain {
		client, ok := g.clients[strings.ToLower(cand.Provider)]
		if !ok {
			lastErr = fmt.Errorf("ai: provider %q not configured", cand.Provider)
			log.Printf("gateway: skipping %s: %v", cand, lastErr)
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		reply, err := client.Generate(callCtx, Request{
			Model:        cand.Model,
			SystemPrompt: system,
			Parts:        parts,
			JSONOutput:   true,
		})
		cancel()
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", cand, err)
			log.Printf("gateway: model %s failed: %v", cand, err)
			continue
		}
		if strings.TrimSpace(reply) == "" {
			lastErr = fmt.Errorf("%s: empty reply", cand)
			log.Printf("gateway: model %s returned empty reply", cand)
			continue
		}

		raw, err := ExtractJSON(reply)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", cand, err)
			log.Printf("gateway: model %s output unusable: %v", cand, err)
			continue
		}
		return raw, nil
	}
	return nil, lastErr
}
