package main

import (
	"encoding/json"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/spritepal"
	"github.com/urfave/cli/v2"
)

const defaultDB = "spritepal.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func snapshotFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "vram",
			Usage:    "path to tile memory dump",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "cgram",
			Usage:    "path to color memory dump",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "oam",
			Usage: "path to sprite attribute dump",
		},
	}
}

func regionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "offset",
			Usage: "byte offset of the first tile",
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "number of tiles",
			Value: 64,
		},
		&cli.IntFlag{
			Name:  "default-bank",
			Usage: "bank for tiles the attribute table never names",
			Value: 8,
		},
		&cli.IntFlag{
			Name:  "per-row",
			Usage: "tiles per sheet row",
			Value: 16,
		},
	}
}

func region(c *cli.Context) spritepal.Region {
	return spritepal.Region{
		Offset:      c.Int("offset"),
		Count:       c.Int("count"),
		DefaultBank: c.Int("default-bank"),
		TilesPerRow: c.Int("per-row"),
	}
}

func writePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, m)
}

func main() {
	app := cli.NewApp()

	app.Name = "spritepal"
	app.Usage = "SNES sprite sheet extraction and injection utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SPRITEPAL_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to region database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "extract",
			Usage:     "Extract a colored sprite sheet from memory dumps",
			ArgsUsage: "PNG",
			Flags:     append(snapshotFlags(), regionFlags()...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				snapshot, err := spritepal.LoadSnapshot(c.String("vram"), c.String("cgram"), c.String("oam"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				r := region(c)
				sheet, err := spritepal.Extract(snapshot.Tiles, r.Offset, r.Count, snapshot.Colors, snapshot.Assignment(), r.DefaultBank, r.TilesPerRow)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				out := c.Args().First()
				if err := writePNG(out, sheet.Image()); err != nil {
					return cli.NewExitError(err, 1)
				}

				b, err := json.MarshalIndent(sheet.Metadata(), "", "  ")
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ioutil.WriteFile(out+".meta.json", b, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "inject",
			Usage:     "Validate an edited sheet and write it back into a copy of tile memory",
			ArgsUsage: "PNG OUTPUT",
			Flags: append(append(snapshotFlags(), regionFlags()...),
				&cli.BoolFlag{
					Name:  "strict",
					Usage: "forbid colors a tile did not already use",
				},
			),
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				snapshot, err := spritepal.LoadSnapshot(c.String("vram"), c.String("cgram"), c.String("oam"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				m, _, err := image.Decode(f)
				f.Close()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				r := region(c)
				edited, err := spritepal.FromImage(m, r.DefaultBank)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if b, err := ioutil.ReadFile(c.Args().First() + ".meta.json"); err == nil {
					var meta spritepal.Metadata
					if err := json.Unmarshal(b, &meta); err != nil {
						return cli.NewExitError(err, 1)
					}
					if err := edited.ApplyMetadata(&meta); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				baseline, err := spritepal.Extract(snapshot.Tiles, r.Offset, r.Count, snapshot.Colors, snapshot.Assignment(), r.DefaultBank, r.TilesPerRow)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				report := spritepal.NewValidator(baseline, spritepal.Options{
					StrictPalette: c.Bool("strict"),
				}).Validate(edited)

				for tile, issues := range report.Tiles {
					for _, issue := range issues {
						logger.Printf("tile %d: %s: %s: %s\n", tile, issue.Severity, issue.Code, issue.Message)
					}
				}

				buf, err := spritepal.Inject(edited, report, snapshot.Tiles, r.Offset, r.Count)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := ioutil.WriteFile(c.Args().Get(1), buf, 0644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Import games, checksums and known regions from JSON",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				e, err := spritepal.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer e.Close()

				if err := e.DB().ImportJSON(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Scan filesystem for known snapshots and write region manifests",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				e, err := spritepal.New(c.String("db"), newLogger(c))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer e.Close()

				if err := e.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
