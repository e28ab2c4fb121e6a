package main

import (
	"os"

	"jwright/internal/buildtool"
	"jwright/internal/config"
	"jwright/internal/extract"
	"jwright/internal/jwrighterr"
	"jwright/internal/llm"
	"jwright/internal/task"
	"jwright/internal/template"
)

// collaborators bundles everything implement and watch both need, built
// once per invocation from config.Load and the detected build tool.
type collaborators struct {
	cfg      *config.Config
	resolver *buildtool.Resolver
	adapter  buildtool.Adapter
	chain    *extract.Chain
	deps     task.Deps
}

func buildCollaborators(dir string) (*collaborators, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	resolver := buildtool.DefaultResolver()
	adapter := resolver.Resolve(dir)
	if adapter == nil {
		return nil, jwrighterr.New(jwrighterr.NoBuildTool, "no Maven or Gradle project found under "+dir)
	}

	client, err := llm.New(cfg.JWright.LLM.ProviderConfig())
	if err != nil {
		return nil, jwrighterr.Wrap(jwrighterr.ConfigInvalid, "unsupported LM provider", err)
	}

	userHome, _ := os.UserHomeDir()
	engine := template.NewEngine(dir, userHome)

	return &collaborators{
		cfg:      cfg,
		resolver: resolver,
		adapter:  adapter,
		chain:    extract.DefaultChain(),
		deps: task.Deps{
			LLM:     client,
			Adapter: adapter,
			Engine:  engine,
		},
	}, nil
}

func (c *collaborators) newPipeline(noRefactor bool) *task.Pipeline {
	refactorEnabled := c.cfg.JWright.Tasks.Refactor.Enabled && !noRefactor
	return task.NewPipeline(c.deps, refactorEnabled, c.resolver, c.chain)
}
