// sitectl deploys a pre-built static website: it validates the declarative
// site config, syncs the content directory into the provisioned bucket,
// invalidates the CDN when content changed, and empties the bucket ahead of
// stack removal. Resource provisioning itself belongs to the host
// orchestration tool; sitectl consumes the identifiers it published.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/GoCodeAlone/staticsite/awsclient"
	"github.com/GoCodeAlone/staticsite/host"
	"github.com/GoCodeAlone/staticsite/topology"
	"github.com/GoCodeAlone/staticsite/website"
)

var version = "dev"

var commands = map[string]func([]string) error{
	"validate": runValidate,
	"topology": runTopology,
	"upload":   runUpload,
	"remove":   runRemove,
	"url":      runURL,
}

func usage() {
	fmt.Fprintf(os.Stderr, `sitectl - static website deployment (version %s)

Usage:
  sitectl <command> [flags]

Commands:
  validate   check a website config file
  topology   print the resource topology for a config
  upload     sync content into the bucket, invalidating the CDN on change
  remove     empty the content bucket ahead of stack teardown
  url        print the effective site URL

Run 'sitectl <command> -h' for command flags.
`, version)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err := cmd(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "sitectl: %v\n", err)
		os.Exit(1)
	}
}

// outputFlags collects repeated -output name=value pairs into a stack-output
// map, standing in for the host's own output store.
type outputFlags map[string]string

func (o outputFlags) String() string { return fmt.Sprintf("%v", map[string]string(o)) }

func (o outputFlags) Set(value string) error {
	name, v, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("expected name=value, got %q", value)
	}
	o[name] = v
	return nil
}

// commonFlags holds flags shared by the remote-operation commands.
type commonFlags struct {
	configPath string
	stack      string
	region     string
	endpoint   string
	outputs    outputFlags
}

func registerCommon(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{outputs: outputFlags{}}
	fs.StringVar(&cf.configPath, "config", "website.yaml", "path to the website config file")
	fs.StringVar(&cf.stack, "stack", "dev", "stack name used to namespace generated resource names")
	fs.StringVar(&cf.region, "region", os.Getenv("AWS_REGION"), "AWS region")
	fs.StringVar(&cf.endpoint, "endpoint", os.Getenv("AWS_ENDPOINT_URL"), "custom S3 endpoint (LocalStack/MinIO)")
	fs.Var(cf.outputs, "output", "stack output as name=value (repeatable)")
	return cf
}

// newCoordinator builds a coordinator from common flags.
func (cf *commonFlags) newCoordinator(ctx context.Context) (*website.Coordinator, error) {
	cfg, err := website.LoadConfig(cf.configPath)
	if err != nil {
		return nil, err
	}
	if cf.region == "" {
		return nil, fmt.Errorf("region is required (set -region or AWS_REGION)")
	}

	clients, err := awsclient.New(ctx, awsclient.Options{
		Region:   cf.region,
		Endpoint: cf.endpoint,
	})
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return website.NewCoordinator(cfg, host.StaticOutputs(cf.outputs), clients.S3, clients.CloudFront, logger), nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "website.yaml", "path to the website config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := website.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	fmt.Printf("config ok: site %q, path %q, domains %v\n", cfg.Name, cfg.Path, cfg.Domains)
	return nil
}

func runTopology(args []string) error {
	fs := flag.NewFlagSet("topology", flag.ExitOnError)
	configPath := fs.String("config", "website.yaml", "path to the website config file")
	stack := fs.String("stack", "dev", "stack name")
	region := fs.String("region", os.Getenv("AWS_REGION"), "AWS region")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := website.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	topo := topology.Build(cfg, host.Context{StackName: *stack, Region: *region})
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(topo)
}

func runUpload(args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	cf := registerCommon(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	coord, err := cf.newCoordinator(ctx)
	if err != nil {
		return err
	}
	return coord.Upload(ctx)
}

func runRemove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	cf := registerCommon(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	coord, err := cf.newCoordinator(ctx)
	if err != nil {
		return err
	}
	return coord.PreRemove(ctx)
}

func runURL(args []string) error {
	fs := flag.NewFlagSet("url", flag.ExitOnError)
	cf := registerCommon(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	coord, err := cf.newCoordinator(ctx)
	if err != nil {
		return err
	}

	url, err := coord.URL(ctx)
	if err != nil {
		return err
	}
	if url == nil {
		return fmt.Errorf("site URL not available: deploy the stack first")
	}
	fmt.Println(*url)
	return nil
}
