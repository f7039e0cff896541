package transfers

import (
	"fmt"
	"os"

	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/seed"
	"github.com/julianstephens/dailytrack/internal/transfer"
)

type ExportCmd struct {
	Path string `arg:"" optional:"" help:"Destination file (.json, .yaml or .yml). Defaults to tasks_config.json next to the database."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	path, err := resolvePath(ctx, c.Path)
	if err != nil {
		return err
	}
	count, err := transfer.ExportFile(ctx.Store, path)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	ctx.Printf("✓ Exported %d task(s) to %s\n", count, path)
	return nil
}

type ImportCmd struct {
	Path string `arg:"" optional:"" help:"Source file (.json, .yaml or .yml). Defaults to tasks_config.json next to the database."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	path, err := resolvePath(ctx, c.Path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("import file not found: %s", path)
	}

	ctx.PerformAutomaticBackup()

	count, err := transfer.ImportFile(ctx.Store, path)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.Printf("✓ Imported %d task(s) from %s\n", count, path)
	return nil
}

func resolvePath(ctx *cli.Context, path string) (string, error) {
	if path == "" {
		return transfer.DefaultConfigFile(cli.ConfigDir(ctx.Store)), nil
	}
	return cli.ExpandPath(path)
}

type SeedCmd struct {
	History bool `help:"Also load the sample history entries."`
}

func (c *SeedCmd) Run(ctx *cli.Context) error {
	seeded, err := seed.IfEmpty(ctx.Store, c.History)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	if !seeded {
		ctx.Println("Store already has tasks, nothing seeded.")
		return nil
	}
	ctx.Printf("✓ Seeded %d starter task(s)\n", len(seed.StarterTasks()))
	if c.History {
		ctx.Println("✓ Loaded sample history")
	}
	return nil
}
