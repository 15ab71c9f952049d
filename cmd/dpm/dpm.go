package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"lab47.dev/dpm/pkg/cmd"
	"lab47.dev/dpm/pkg/config"
	"lab47.dev/dpm/pkg/data"
	"lab47.dev/dpm/pkg/humanize"
	"lab47.dev/dpm/pkg/ops"
	"lab47.dev/dpm/pkg/registry"
)

func main() {
	if os.Getenv("DPM_DEBUG") != "" {
		hclog.L().SetLevel(hclog.Debug)
	}

	c := cli.NewCLI("dpm", "0.1.0")
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"init": func() (cli.Command, error) {
			return cmd.New(
				"init",
				"Create an empty package manifest",
				initF,
			), nil
		},
		"add": func() (cli.Command, error) {
			return cmd.New(
				"add",
				"Add or replace a package in the manifest",
				addF,
			), nil
		},
		"remove": func() (cli.Command, error) {
			return cmd.New(
				"remove",
				"Remove a package from the manifest",
				removeF,
			), nil
		},
		"update": func() (cli.Command, error) {
			return cmd.New(
				"update",
				"Update fields of a package, creating it if missing",
				updateF,
			), nil
		},
		"list": func() (cli.Command, error) {
			return cmd.New(
				"list",
				"List packages in the manifest",
				listF,
			), nil
		},
		"info": func() (cli.Command, error) {
			return cmd.New(
				"info",
				"Show a package's catalog entry or remote descriptor",
				infoF,
			), nil
		},
		"sync": func() (cli.Command, error) {
			return cmd.New(
				"sync",
				"Replace the manifest with the remote registry",
				syncF,
			), nil
		},
		"fetch": func() (cli.Command, error) {
			return cmd.New(
				"fetch",
				"Download a package artifact and verify its hash",
				fetchF,
			), nil
		},
		"publish": func() (cli.Command, error) {
			return cmd.New(
				"publish",
				"Write the manifest to a file for hosting",
				publishF,
			), nil
		},
		"debug": func() (cli.Command, error) {
			return cmd.New(
				"debug",
				"Dump internal state of a manifest file",
				debugF,
			), nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Println(err)
	}

	os.Exit(exitStatus)
}

func loadManifest(cfg *config.Config) (*registry.Registry, error) {
	if _, err := os.Stat(cfg.ManifestPath); err != nil {
		return registry.New(), nil
	}

	return registry.Load(cfg.ManifestPath)
}

type initOpts struct{}

func initF(ctx context.Context, opts initOpts) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reg := registry.New()

	err = reg.Save(cfg.ManifestPath)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote empty manifest to %s\n", cfg.ManifestPath)

	return nil
}

type addOpts struct {
	Name        string   `short:"n" long:"name" required:"true" description:"package name"`
	URL         string   `short:"u" long:"url" required:"true" description:"artifact download URL"`
	File        string   `short:"f" long:"file" required:"true" description:"artifact file name"`
	Version     string   `short:"v" long:"version" required:"true" description:"package version"`
	Hash        string   `long:"hash" description:"artifact content hash (hex, sha256:..., or b2:...)"`
	Deps        []string `short:"d" long:"dep" description:"dependency as name@version, repeatable"`
	Entry       string   `long:"entry" description:"entry point within the package"`
	Description string   `long:"description" description:"short description"`
}

func addF(ctx context.Context, opts addOpts) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reg, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	deps, err := parseDeps(opts.Deps)
	if err != nil {
		return err
	}

	reg.Add(opts.Name, opts.URL, opts.File, opts.Version, opts.Hash, deps, opts.Entry, opts.Description)

	return reg.Save(cfg.ManifestPath)
}

type removeOpts struct {
	Name string `short:"n" long:"name" required:"true" description:"package name"`
}

func removeF(ctx context.Context, opts removeOpts) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reg, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	pkg, err := reg.Remove(opts.Name)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %s %s\n", opts.Name, pkg.Version)

	return reg.Save(cfg.ManifestPath)
}

type updateOpts struct {
	Name        string   `short:"n" long:"name" required:"true" description:"package name"`
	URL         *string  `short:"u" long:"url" description:"artifact download URL"`
	File        *string  `short:"f" long:"file" description:"artifact file name"`
	Version     *string  `short:"v" long:"version" description:"package version"`
	Hash        *string  `long:"hash" description:"artifact content hash"`
	Deps        []string `short:"d" long:"dep" description:"dependency as name@version; replaces the whole list"`
	Entry       *string  `long:"entry" description:"entry point within the package"`
	Description *string  `long:"description" description:"short description"`
}

func updateF(ctx context.Context, opts updateOpts) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reg, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	deps, err := parseDeps(opts.Deps)
	if err != nil {
		return err
	}

	reg.Update(opts.Name, registry.UpdateFields{
		URL:          opts.URL,
		FileName:     opts.File,
		Version:      opts.Version,
		Hash:         opts.Hash,
		Dependencies: deps,
		Entry:        opts.Entry,
		Description:  opts.Description,
	})

	return reg.Save(cfg.ManifestPath)
}

type listOpts struct{}

func listF(ctx context.Context, opts listOpts) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reg, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 2, 1, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "NAME\tVERSION\tFILE\tURL\n")

	for _, name := range reg.Names() {
		pkg, err := reg.Get(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, pkg.Version, pkg.FileName, pkg.URL)
	}

	return nil
}

type infoOpts struct {
	Name   string `short:"n" long:"name" required:"true" description:"package name"`
	Remote bool   `short:"r" long:"remote" description:"fetch the full descriptor from the package host"`
}

func infoF(ctx context.Context, opts infoOpts) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reg, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	if opts.Remote {
		var pfi ops.PackageFetchInfo

		info, err := pfi.Fetch(ctx, reg, opts.Name)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n  file: %s\n  hash: %s\n  %s\n", info.PackageName, info.Version, info.FileName, info.Hash, info.Description)

		for _, dep := range info.Dependencies {
			fmt.Printf("  requires %s %s\n", dep.Name, dep.Version)
		}

		return nil
	}

	pkg, err := reg.Get(opts.Name)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n  url: %s\n  file: %s\n  hash: %s\n", opts.Name, pkg.Version, pkg.URL, pkg.FileName, pkg.Hash)

	for _, dep := range pkg.Dependencies {
		fmt.Printf("  requires %s %s\n", dep.Name, dep.Version)
	}

	return nil
}

type syncOpts struct {
	URL string `short:"u" long:"url" description:"registry manifest URL (default from config)"`
}

func syncF(ctx context.Context, opts syncOpts) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	url := opts.URL
	if url == "" {
		url = cfg.RegistryURL
	}

	if url == "" {
		return errors.New("no registry url given and none configured")
	}

	reg, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	var rr ops.RegistryRefresh

	err = rr.Refresh(ctx, reg, url)
	if err != nil {
		return err
	}

	err = reg.Save(cfg.ManifestPath)
	if err != nil {
		return err
	}

	fmt.Printf("Synced %d packages from %s\n", reg.Len(), url)

	return nil
}

type fetchOpts struct {
	Name string `short:"n" long:"name" required:"true" description:"package name"`
	Dir  string `long:"dir" description:"directory to download into (default from config)"`
}

func fetchF(ctx context.Context, opts fetchOpts) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reg, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	pd := ops.PackageDownload{
		Dir: opts.Dir,
	}

	if pd.Dir == "" {
		pd.Dir = cfg.DownloadDir
	}

	info, path, err := pd.Download(ctx, reg, opts.Name)
	if err != nil {
		return err
	}

	size := "unknown size"

	if fi, err := os.Stat(path); err == nil {
		size = humanize.String(fi.Size())
	}

	fmt.Printf("Fetched %s %s (%s) to %s\n", info.PackageName, info.Version, size, path)

	return nil
}

type publishOpts struct {
	Output string `short:"o" long:"output" required:"true" description:"file to write the registry document to"`
}

func publishF(ctx context.Context, opts publishOpts) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reg, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	err = reg.Save(opts.Output)
	if err != nil {
		return err
	}

	fmt.Printf("Published %d packages to %s\n", reg.Len(), opts.Output)

	return nil
}

type debugOpts struct {
	Args struct {
		Rest []string `positional-arg-name:"args"`
	} `positional-args:"true"`
}

func debugF(ctx context.Context, opts debugOpts) error {
	fs := pflag.NewFlagSet("debug", pflag.ExitOnError)

	path := fs.String("path", "", "manifest file to dump (default from config)")

	err := fs.Parse(opts.Args.Rest)
	if err != nil {
		return err
	}

	if *path == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		*path = cfg.ManifestPath
	}

	reg, err := registry.Load(*path)
	if err != nil {
		return err
	}

	spew.Dump(reg.Entries())

	return nil
}

func parseDeps(specs []string) ([]data.Dependency, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	var deps []data.Dependency

	for _, s := range specs {
		at := strings.LastIndexByte(s, '@')
		if at <= 0 || at == len(s)-1 {
			return nil, errors.Errorf("malformed dependency %q, want name@version", s)
		}

		deps = append(deps, data.NewDependency(s[:at], s[at+1:]))
	}

	return deps, nil
}
