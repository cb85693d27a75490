package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"resolver-wizard/internal/apiserver"
	"resolver-wizard/internal/config"
	"resolver-wizard/internal/graphqlapi"
	"resolver-wizard/internal/logging"
	"resolver-wizard/internal/resolver"
)

const envPrefix = "RESOLVER_WIZARD_"

func newApp() *cli.App {
	return &cli.App{
		Name:  "resolver-wizard",
		Usage: "configure GraphQL field resolvers",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "configuration file", EnvVars: []string{envPrefix + "CONFIG"}},
			&cli.StringFlag{Name: "server", Usage: "API server address", EnvVars: []string{envPrefix + "SERVER"}},
			&cli.BoolFlag{Name: "insecure", Usage: "dial without TLS", EnvVars: []string{envPrefix + "INSECURE"}},
			&cli.DurationFlag{Name: "timeout", Usage: "per-call timeout", EnvVars: []string{envPrefix + "TIMEOUT"}},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", EnvVars: []string{envPrefix + "LOG_LEVEL"}},
			&cli.StringFlag{Name: "log-format", Usage: "text or json", EnvVars: []string{envPrefix + "LOG_FORMAT"}},
			&cli.StringFlag{Name: "api", Usage: "GraphQL API name", EnvVars: []string{envPrefix + "API"}},
			&cli.StringFlag{Name: "namespace", Aliases: []string{"n"}, Usage: "GraphQL API namespace", EnvVars: []string{envPrefix + "NAMESPACE"}},
			&cli.StringFlag{Name: "cluster", Usage: "GraphQL API cluster", EnvVars: []string{envPrefix + "CLUSTER"}},
			&cli.BoolFlag{Name: "read-only", Usage: "refuse to submit or remove", EnvVars: []string{envPrefix + "READ_ONLY"}},
		},
		Commands: []*cli.Command{
			renderCommand(),
			assembleCommand(),
			submitCommand(),
			removeCommand(),
			fieldsCommand(),
			upstreamsCommand(),
			initConfigCommand(),
		},
	}
}

// runtime is the per-invocation state shared by the commands.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

func setup(c *cli.Context) (*runtime, error) {
	cfg := config.Default()

	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if c.IsSet("server") {
		cfg.Server.Address = c.String("server")
	}

	if c.IsSet("insecure") {
		cfg.Server.Insecure = c.Bool("insecure")
	}

	if c.IsSet("timeout") {
		cfg.Server.Timeout = c.Duration("timeout")
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}

	if c.IsSet("api") {
		cfg.API.Name = c.String("api")
	}

	if c.IsSet("namespace") {
		cfg.API.Namespace = c.String("namespace")
	}

	if c.IsSet("cluster") {
		cfg.API.Cluster = c.String("cluster")
	}

	if c.IsSet("read-only") {
		cfg.ReadOnly = c.Bool("read-only")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, logger: logger, out: c.App.Writer}, nil
}

func (rt *runtime) dial() (*apiserver.Client, error) {
	return apiserver.Dial(rt.cfg.Server.Address,
		apiserver.WithLogger(rt.logger),
		apiserver.WithTimeout(rt.cfg.Server.Timeout),
		apiserver.WithInsecure(rt.cfg.Server.Insecure))
}

func (rt *runtime) apiRef() (graphqlapi.ClusterObjectRef, error) {
	ref := rt.cfg.API.Ref()
	if ref.Name == "" {
		return ref, fmt.Errorf("no GraphQL API selected: set --api or api.name in the config file")
	}

	if ref.Namespace == "" {
		ref.Namespace = config.DefaultNamespace
	}

	return ref, nil
}

func (rt *runtime) assembler() *resolver.Assembler {
	return resolver.NewAssembler(resolver.WithLogger(rt.logger))
}

// parseField splits "Type.field".
func parseField(arg string) (string, string, error) {
	objectType, field, ok := strings.Cut(arg, ".")
	if !ok || objectType == "" || field == "" {
		return "", "", fmt.Errorf("field must be written as Type.field, got %q", arg)
	}

	return objectType, field, nil
}

func fieldArg(c *cli.Context) (string, string, error) {
	if c.NArg() != 1 {
		return "", "", fmt.Errorf("expected exactly one Type.field argument")
	}

	return parseField(c.Args().First())
}

func kindFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "resolver kind: REST, gRPC or Mock"}
}

// kindOf reads --kind, or returns fallback when it is unset.
func kindOf(c *cli.Context, fallback resolver.Kind) (resolver.Kind, error) {
	if !c.IsSet("kind") {
		return fallback, nil
	}

	return resolver.ParseKind(c.String("kind"))
}

// readInput reads path, or stdin for "-".
func readInput(c *cli.Context, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(c.App.Reader)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}
