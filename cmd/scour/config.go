package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/scour/internal/config"
	"github.com/standardbeagle/scour/internal/serrors"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage project configuration (.scour.kdl)",
		Subcommands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Write an annotated starter .scour.kdl",
				ArgsUsage: "[PATH]",
				Action:    runConfigInit,
			},
			{
				Name:      "show",
				Usage:     "Print the effective configuration as TOML",
				ArgsUsage: "[PATH]",
				Action:    runConfigShow,
			},
			{
				Name:      "validate",
				Usage:     "Check the configuration file for problems",
				ArgsUsage: "[PATH]",
				Action:    runConfigValidate,
			},
		},
	}
}

func configRoot(c *cli.Context) (string, error) {
	root := "."
	if c.NArg() > 0 {
		root = c.Args().Get(0)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", serrors.NewInputError("path", root, "path does not exist or is not a directory")
	}
	return root, nil
}

func runConfigInit(c *cli.Context) error {
	root, err := configRoot(c)
	if err != nil {
		return err
	}

	path := filepath.Join(root, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return serrors.NewInputError("path", path, "config file already exists")
	}

	if err := os.WriteFile(path, []byte(config.ExampleKDL), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow(c *cli.Context) error {
	root, err := configRoot(c)
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	out, err := cfg.RenderTOML()
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func runConfigValidate(c *cli.Context) error {
	root, err := configRoot(c)
	if err != nil {
		return err
	}

	if _, err := config.Load(root); err != nil {
		return err
	}
	fmt.Printf("%s: OK\n", filepath.Join(root, config.FileName))
	return nil
}
