package cli

import (
	"context"
	"fmt"

	"github.com/pt428/recipes/internal/buildinfo"
	"github.com/pt428/recipes/internal/client/export"
	"github.com/pt428/recipes/internal/client/models"
)

// newS3Sink is an indirection used to facilitate testing.
var newS3Sink = func(ctx context.Context, cfg export.S3Config) (export.Sink, error) {
	return export.NewS3Sink(ctx, cfg)
}

func (a *App) exportSink(ctx context.Context) (export.Sink, error) {
	c := a.config.Export
	if c.Bucket != "" {
		return newS3Sink(ctx, export.S3Config{
			Bucket:    c.Bucket,
			Region:    c.Region,
			Endpoint:  c.Endpoint,
			Prefix:    c.Prefix,
			AccessKey: c.AccessKey,
			SecretKey: c.SecretKey,
		})
	}
	return export.NewDirSink(c.Dir)
}

// export writes every recipe of the signed-in user to the configured
// directory or bucket.
func (a *App) export(ctx context.Context, args []string) error {
	name := a.config.Export.Format
	if len(args) > 0 {
		name = args[0]
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return errUsage
	}

	recipes, err := a.recipes.Collect(ctx, models.ViewMine)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		a.println("You have no recipes to export.")
		return nil
	}

	sink, err := a.exportSink(ctx)
	if err != nil {
		return fmt.Errorf("export destination error: %w", err)
	}

	locations, err := export.NewExporter(sink, format, a.logger).Export(ctx, recipes)
	for _, loc := range locations {
		a.println(loc)
	}
	if err != nil {
		return err
	}
	a.printf("Exported %d recipes.\n", len(locations))
	return nil
}

func (a *App) version(_ context.Context, _ []string) error {
	buildinfo.PrintBuildData(a.out)
	return nil
}
