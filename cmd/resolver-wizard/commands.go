package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"resolver-wizard/internal/config"
	"resolver-wizard/internal/diagnostic"
	"resolver-wizard/internal/graphqlapi"
	"resolver-wizard/internal/resolver"
	"resolver-wizard/internal/wizard"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "print a field's resolver as editable YAML",
		ArgsUsage: "Type.field",
		Flags: []cli.Flag{
			kindFlag(),
			&cli.StringFlag{Name: "from-file", Usage: "render a resolution JSON file instead of asking the server"},
		},
		Action: func(c *cli.Context) error {
			rt, err := setup(c)
			if err != nil {
				return err
			}

			kind, err := kindOf(c, 0)
			if err != nil {
				return err
			}

			var res *resolver.Resolution

			if path := c.String("from-file"); path != "" {
				data, err := readInput(c, path)
				if err != nil {
					return err
				}

				res = &resolver.Resolution{}
				if err := json.Unmarshal(data, res); err != nil {
					return fmt.Errorf("failed to decode resolution %s: %w", path, err)
				}
			} else {
				target, err := loadTarget(c, rt)
				if err != nil {
					return err
				}

				res = target.Existing
			}

			text, diags := rt.assembler().Render(res, kind)
			logWarnings(rt, diags)

			_, err = fmt.Fprint(rt.out, text)

			return err
		},
	}
}

func assembleCommand() *cli.Command {
	return &cli.Command{
		Name:      "assemble",
		Usage:     "check a resolver configuration without contacting the server",
		ArgsUsage: "Type.field",
		Flags: []cli.Flag{
			kindFlag(),
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "configuration YAML, - for stdin", Required: true},
			&cli.StringFlag{Name: "upstream", Aliases: []string{"u"}, Usage: "upstream id, name::namespace"},
			&cli.BoolFlag{Name: "dump", Usage: "dump the assembled item instead of printing JSON"},
		},
		Action: func(c *cli.Context) error {
			rt, err := setup(c)
			if err != nil {
				return err
			}

			objectType, field, err := fieldArg(c)
			if err != nil {
				return err
			}

			kind, err := kindOf(c, resolver.KindREST)
			if err != nil {
				return err
			}

			data, err := readInput(c, c.String("file"))
			if err != nil {
				return err
			}

			item, diags, err := rt.assembler().Assemble(resolver.Input{
				Config:   string(data),
				Kind:     kind,
				Field:    field,
				Upstream: c.String("upstream"),
				Extras:   resolver.Extras{ObjectType: objectType},
			})
			logWarnings(rt, diags)

			if err != nil {
				return err
			}

			if c.Bool("dump") {
				spew.Fdump(rt.out, item)
				return nil
			}

			out, err := json.MarshalIndent(item, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode item: %w", err)
			}

			_, err = fmt.Fprintln(rt.out, string(out))

			return err
		},
	}
}

func submitCommand() *cli.Command {
	return &cli.Command{
		Name:      "submit",
		Usage:     "validate and store a field's resolver",
		ArgsUsage: "Type.field",
		Flags: []cli.Flag{
			kindFlag(),
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "configuration YAML, - for stdin", Required: true},
			&cli.StringFlag{Name: "upstream", Aliases: []string{"u"}, Usage: "upstream id, name::namespace"},
			&cli.StringFlag{Name: "proto", Usage: "FileDescriptorSet for a gRPC resolver, binary or base64"},
		},
		Action: func(c *cli.Context) error {
			rt, err := setup(c)
			if err != nil {
				return err
			}

			client, err := rt.dial()
			if err != nil {
				return err
			}
			defer client.Close()

			target, err := loadTargetWith(c, rt, client)
			if err != nil {
				return err
			}

			s := wizard.NewSession(client, target,
				wizard.WithLogger(rt.logger),
				wizard.WithAssembler(rt.assembler()),
				wizard.WithReadOnly(rt.cfg.ReadOnly))
			defer s.Close()

			kind, err := kindOf(c, s.State().Kind)
			if err != nil {
				return err
			}

			if err := s.SelectKind(kind); err != nil {
				return err
			}

			if path := c.String("proto"); path != "" {
				data, err := readInput(c, path)
				if err != nil {
					return err
				}

				if err := s.UploadProto(data); err != nil {
					return err
				}

				if w := s.Warning(); w != "" {
					rt.logger.Warn(w)
				}
			}

			if c.IsSet("upstream") {
				if err := s.SelectUpstream(c.String("upstream")); err != nil {
					return err
				}
			}

			data, err := readInput(c, c.String("file"))
			if err != nil {
				return err
			}

			if err := s.SetConfig(string(data)); err != nil {
				return err
			}

			if _, err := s.Submit(c.Context); err != nil {
				return err
			}

			if w := s.Warning(); w != "" {
				rt.logger.Warn(w)
			}

			_, err = fmt.Fprintf(rt.out, "resolver for %s.%s saved\n", target.ObjectType, target.Field)

			return err
		},
	}
}

func removeCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "detach a field's resolver",
		ArgsUsage: "Type.field",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "confirm the removal"},
		},
		Action: func(c *cli.Context) error {
			rt, err := setup(c)
			if err != nil {
				return err
			}

			client, err := rt.dial()
			if err != nil {
				return err
			}
			defer client.Close()

			target, err := loadTargetWith(c, rt, client)
			if err != nil {
				return err
			}

			s := wizard.NewSession(client, target,
				wizard.WithLogger(rt.logger),
				wizard.WithAssembler(rt.assembler()),
				wizard.WithReadOnly(rt.cfg.ReadOnly))
			defer s.Close()

			if err := s.RequestRemove(); err != nil {
				return err
			}

			if !c.Bool("yes") {
				s.CancelRemove()
				return errors.New("removal not confirmed: pass --yes")
			}

			if _, err := s.ConfirmRemove(c.Context); err != nil {
				return err
			}

			_, err = fmt.Fprintf(rt.out, "resolver for %s.%s removed\n", target.ObjectType, target.Field)

			return err
		},
	}
}

func fieldsCommand() *cli.Command {
	return &cli.Command{
		Name:  "fields",
		Usage: "list the API's object fields and their resolvers",
		Action: func(c *cli.Context) error {
			rt, err := setup(c)
			if err != nil {
				return err
			}

			client, err := rt.dial()
			if err != nil {
				return err
			}
			defer client.Close()

			ref, err := rt.apiRef()
			if err != nil {
				return err
			}

			api, err := client.GetGraphqlApi(c.Context, ref)
			if err != nil {
				return err
			}

			exec, err := api.Executable()
			if err != nil {
				return err
			}

			sch, err := graphqlapi.ParseSchema(exec.SchemaDefinition)
			if err != nil {
				return err
			}

			resolutions := exec.Resolutions()

			tw := tabwriter.NewWriter(rt.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FIELD\tTYPE\tRESOLVER\tKIND")

			for _, f := range sch.Fields() {
				kind := "-"
				if res, ok := resolutions[f.ResolverName]; ok && res.Kind().Valid() {
					kind = res.Kind().String()
				}

				name := f.ResolverName
				if name == "" {
					name = "-"
				}

				fmt.Fprintf(tw, "%s.%s\t%s\t%s\t%s\n", f.ObjectType, f.Name, f.ReturnType, name, kind)
			}

			return tw.Flush()
		},
	}
}

func upstreamsCommand() *cli.Command {
	return &cli.Command{
		Name:  "upstreams",
		Usage: "list upstream ids a resolver can call",
		Action: func(c *cli.Context) error {
			rt, err := setup(c)
			if err != nil {
				return err
			}

			client, err := rt.dial()
			if err != nil {
				return err
			}
			defer client.Close()

			ups, err := client.ListUpstreams(c.Context)
			if err != nil {
				return err
			}

			for _, u := range ups {
				if _, err := fmt.Fprintln(rt.out, u.ID()); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func initConfigCommand() *cli.Command {
	return &cli.Command{
		Name:      "init-config",
		Usage:     "write a configuration file with the defaults",
		ArgsUsage: "path",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected the path to write")
			}

			return config.WriteFile(config.Default(), c.Args().First())
		},
	}
}

func loadTarget(c *cli.Context, rt *runtime) (wizard.Target, error) {
	client, err := rt.dial()
	if err != nil {
		return wizard.Target{}, err
	}
	defer client.Close()

	return loadTargetWith(c, rt, client)
}

// targetSource is the client call loadTargetWith needs.
type targetSource interface {
	GetGraphqlApi(ctx context.Context, ref graphqlapi.ClusterObjectRef) (*graphqlapi.GraphqlApi, error)
}

func loadTargetWith(c *cli.Context, rt *runtime, src targetSource) (wizard.Target, error) {
	objectType, field, err := fieldArg(c)
	if err != nil {
		return wizard.Target{}, err
	}

	ref, err := rt.apiRef()
	if err != nil {
		return wizard.Target{}, err
	}

	api, err := src.GetGraphqlApi(c.Context, ref)
	if err != nil {
		return wizard.Target{}, err
	}

	return wizard.TargetFor(api, objectType, field)
}

func logWarnings(rt *runtime, diags *diagnostic.Diagnostics) {
	if diags == nil {
		return
	}

	for _, w := range diags.Warnings {
		rt.logger.Warn(w.Message, "path", w.Path, "code", w.Code, "suggestions", w.Suggestions)
	}
}
