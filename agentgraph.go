// Package agentgraph provides a high-level façade over the graph execution
// engine and its collaborators (tool gateway, agent runtime, aggregation)
// for the fixed two-agent retrieval/summarization pipeline. Most
// applications interact with this package by:
//  1. Resolving configuration (config.Load)
//  2. Creating a Pipeline via New() with a Runtime and a TokenSource
//  3. Invoking it per request (Invoke), receiving an aggregated Report
//
// Each Invoke builds its own catalog, graph and run; no mutable state is
// shared across concurrent requests.
package agentgraph

import (
	"context"
	"fmt"
	"net/http"

	"github.com/agentgraph/agentgraph/config"
	"github.com/agentgraph/agentgraph/core"
	"github.com/agentgraph/agentgraph/gateway"
	"github.com/agentgraph/agentgraph/graph"
	"github.com/agentgraph/agentgraph/logging"
	"github.com/agentgraph/agentgraph/report"
	"github.com/agentgraph/agentgraph/runtime"
)

// Node names of the fixed pipeline.
const (
	SlackNodeName = "slack_agent"
	WebNodeName   = "tavily_agent"
	BlockNodeName = "block_agent"
)

// Default prompts and routing keywords of the fixed pipeline.
const (
	DefaultSlackInstructions = "You are a Slack integration assistant. " +
		"Retrieve every message that has an attached URL from the configured channel."
	DefaultWebInstructions = "You are a web research assistant. " +
		"Extract the page content behind the retrieved URLs with the extract tool and summarize it."
	DefaultFollowUpPrompt = "Summarize the retrieved URLs."

	DefaultSlackKeyword = "slack"
	DefaultWebKeyword   = "tavily"
)

// Options configures a Pipeline beyond the required collaborators.
type Options struct {
	// Logger receives pipeline diagnostics. Defaults to the no-op logger.
	Logger logging.Logger
	// HTTPClient overrides the transport used for gateway calls.
	HTTPClient *http.Client
	// SlackInstructions / WebInstructions override the node system prompts.
	SlackInstructions string
	WebInstructions   string
	// FollowUpPrompt is the fixed input passed to the web node when the
	// slack node completes. This mirrors the observed production behavior;
	// see ThreadUpstreamOutput for the alternative policy.
	FollowUpPrompt string
	// ThreadUpstreamOutput passes the slack node's text output to the web
	// node instead of the fixed follow-up prompt.
	ThreadUpstreamOutput bool
	// SlackKeyword / WebKeyword override the capability routing keywords.
	SlackKeyword string
	WebKeyword   string
}

// Pipeline coordinates one token exchange, one scoped gateway session, the
// fixed two-agent graph and result aggregation per invocation.
type Pipeline struct {
	cfg        *config.Config
	rt         runtime.Runtime
	tokens     gateway.TokenSource
	logger     logging.Logger
	httpClient *http.Client
	aggregator *report.Aggregator

	slackInstructions string
	webInstructions   string
	followUpPrompt    string
	threadUpstream    bool
	slackKeyword      string
	webKeyword        string
}

// New constructs a Pipeline. The runtime executes agent invocations; tokens
// authenticates gateway sessions. When tokens is nil and the configuration
// carries client credentials, an M2M token source is built from them.
func New(cfg *config.Config, rt runtime.Runtime, tokens gateway.TokenSource, optFns ...func(o *Options)) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, fmt.Errorf("runtime must not be nil")
	}
	if tokens == nil {
		if cfg.TokenURL == "" {
			return nil, fmt.Errorf("no token source supplied and no token endpoint configured")
		}
		tokens = gateway.NewClientCredentialsTokenSource(cfg.TokenURL, cfg.ClientID, cfg.ClientSecret, cfg.AuthScope)
	}

	opts := Options{
		Logger:            logging.NoOpLogger{},
		SlackInstructions: DefaultSlackInstructions,
		WebInstructions:   DefaultWebInstructions,
		FollowUpPrompt:    DefaultFollowUpPrompt,
		SlackKeyword:      DefaultSlackKeyword,
		WebKeyword:        DefaultWebKeyword,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Pipeline{
		cfg:               cfg,
		rt:                rt,
		tokens:            tokens,
		logger:            opts.Logger,
		httpClient:        opts.HTTPClient,
		aggregator:        report.NewAggregator(),
		slackInstructions: opts.SlackInstructions,
		webInstructions:   opts.WebInstructions,
		followUpPrompt:    opts.FollowUpPrompt,
		threadUpstream:    opts.ThreadUpstreamOutput,
		slackKeyword:      opts.SlackKeyword,
		webKeyword:        opts.WebKeyword,
	}, nil
}

// Invoke runs the pipeline for one request: acquire a token (cached for the
// request), open the gateway session and hold it across all node executions,
// assemble and route the catalog, run the graph and aggregate the result.
// The session is released on every exit path. A run with failed nodes still
// yields a best-effort report with status "failed"; only setup failures
// (token, session, catalog, graph construction) return an error.
func (p *Pipeline) Invoke(ctx context.Context, sessionID, prompt string) (*report.Report, error) {
	rc := core.NewRequestContext(ctx, sessionID, p.cfg.UserID, p.logger)
	logger := rc.Logger()

	client := gateway.NewClient(p.cfg.GatewayURL, gateway.NewCachedTokenSource(p.tokens), func(o *gateway.Options) {
		o.Logger = logger
		if p.httpClient != nil {
			o.HTTPClient = p.httpClient
		}
	})

	session, err := client.OpenSession(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	catalog, err := session.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	slackRoute := gateway.Route(catalog, p.slackKeyword)
	if slackRoute.FellBack {
		logger.Warn("no capability matched keyword, falling back to full catalog",
			"keyword", p.slackKeyword, "catalog_size", catalog.Len())
	}
	webRoute := gateway.Route(catalog, p.webKeyword)
	if webRoute.FellBack {
		logger.Warn("no capability matched keyword, falling back to full catalog",
			"keyword", p.webKeyword, "catalog_size", catalog.Len())
	}

	g, err := p.buildGraph(slackRoute.Capabilities, webRoute.Capabilities)
	if err != nil {
		return nil, err
	}

	run := g.Run(rc, prompt)
	return p.aggregator.Aggregate(run, rc), nil
}

// buildGraph assembles the fixed pipeline: slack_agent -> tavily_agent,
// with a terminal marker edge stopping propagation at the block node.
func (p *Pipeline) buildGraph(slackCaps, webCaps []gateway.Capability) (*graph.Graph, error) {
	edgeOpts := []graph.EdgeOption{graph.WithEdgeInput(p.followUpPrompt)}
	if p.threadUpstream {
		edgeOpts = []graph.EdgeOption{graph.WithUpstreamInput()}
	}

	return graph.NewBuilder().
		AddNode(graph.NewAgentNode(SlackNodeName, p.rt, slackCaps, p.slackInstructions)).
		AddNode(graph.NewAgentNode(WebNodeName, p.rt, webCaps, p.webInstructions)).
		AddNode(graph.NewNoopNode(BlockNodeName)).
		AddEdge(SlackNodeName, WebNodeName, edgeOpts...).
		AddTerminalEdge(WebNodeName, BlockNodeName).
		SetEntry(SlackNodeName).
		Build()
}
