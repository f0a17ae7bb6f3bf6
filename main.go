package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/AjAyrAo43/AI-BLOG-WRITING-AGENT/config"
	"github.com/AjAyrAo43/AI-BLOG-WRITING-AGENT/engine"
	"github.com/AjAyrAo43/AI-BLOG-WRITING-AGENT/server"
	"github.com/AjAyrAo43/AI-BLOG-WRITING-AGENT/store"
)

func main() {
	configPath := flag.String("config", "", "path to config.json (defaults apply when omitted)")
	addr := flag.String("addr", "", "http listen address (overrides config.server_addr)")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	logger, err := buildLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	invoker, err := buildInvoker(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	blogs := store.New(cfg.BlogDir, logger)
	srv, err := server.New(invoker, blogs, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	listen := cfg.ServerAddr
	if *addr != "" {
		listen = *addr
	}

	logger.Info("starting blog writing agent", zap.String("addr", listen), zap.String("blog_dir", cfg.BlogDir))
	if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func buildInvoker(cfg config.Config) (engine.Invoker, error) {
	if cfg.Engine == nil || cfg.Engine.Provider == "" {
		return nil, fmt.Errorf("engine config missing; set engine.provider to openai, deepseek, remote, or mock")
	}
	switch cfg.Engine.Provider {
	case "openai":
		return engine.NewOpenAIInvoker(&engine.Settings{
			Provider: cfg.Engine.Provider,
			Model:    cfg.Engine.Model,
			APIKey:   cfg.Engine.APIKey,
			BaseURL:  cfg.Engine.BaseURL,
		})
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible interface; base_url is mandatory.
		if cfg.Engine.BaseURL == "" {
			return nil, fmt.Errorf("engine provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return engine.NewOpenAIInvoker(&engine.Settings{
			Provider: cfg.Engine.Provider,
			Model:    cfg.Engine.Model,
			APIKey:   cfg.Engine.APIKey,
			BaseURL:  cfg.Engine.BaseURL,
		})
	case "remote":
		return engine.NewRemoteInvoker(cfg.Engine.URL, nil)
	case "mock":
		return engine.MockInvoker{}, nil
	default:
		return nil, fmt.Errorf("engine provider %s not supported", cfg.Engine.Provider)
	}
}
