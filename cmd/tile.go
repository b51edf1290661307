// cmd/tile.go - Single tile rendering command
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mvtserve/internal/config"
)

var (
	tileZ      uint32
	tileX      uint32
	tileY      uint32
	tileOutput string
)

var tileCmd = &cobra.Command{
	Use:   "tile <tileset>",
	Short: "Render a single vector tile",
	Long: `Render one tile for the given tileset (or layer) name and write its
binary encoding to a file or stdout. The tile goes through the normal
cache-aside path, so a configured cache is consulted and populated.

Examples:
  mvtserve tile points --z 6 --x 33 --y 22 --output tile.pbf
  mvtserve tile base --z 14 --x 8362 --y 5956 > tile.pbf`,
	Args: cobra.ExactArgs(1),
	RunE: runTile,
}

func init() {
	tileCmd.Flags().Uint32Var(&tileZ, "z", 0, "zoom level")
	tileCmd.Flags().Uint32Var(&tileX, "x", 0, "tile column")
	tileCmd.Flags().Uint32Var(&tileY, "y", 0, "tile row (0 at the top)")
	tileCmd.Flags().StringVarP(&tileOutput, "output", "o", "", "output file (default stdout)")
	tileCmd.MarkFlagRequired("z")
	tileCmd.MarkFlagRequired("x")
	tileCmd.MarkFlagRequired("y")

	rootCmd.AddCommand(tileCmd)
}

func runTile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	svc, cleanup, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	tile, err := svc.Tile(cmd.Context(), args[0], tileX, tileY, tileZ)
	if err != nil {
		return err
	}

	data, err := tile.Marshal()
	if err != nil {
		return err
	}

	if tileOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(tileOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write tile: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %d bytes to %s\n", len(data), tileOutput)
	return nil
}
