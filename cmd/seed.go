// cmd/seed.go - Cache seeding command
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mvtserve/internal/config"
	"mvtserve/internal/seed"
)

var (
	seedMinZoom uint32
	seedMaxZoom uint32
	seedBBox    string
	seedWorkers int
)

var seedCmd = &cobra.Command{
	Use:   "seed <tileset>",
	Short: "Pre-generate tiles into the cache",
	Long: `Walk every tile of a lon/lat bounding box across a zoom range and
generate it through the normal cache-aside path, populating the configured
cache strategy. Requires a cache strategy other than none to be useful.

Example:
  mvtserve seed points --min-zoom 4 --max-zoom 8 --bbox "-74.0,40.7,-73.9,40.8" --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().Uint32Var(&seedMinZoom, "min-zoom", 0, "first zoom level to seed")
	seedCmd.Flags().Uint32Var(&seedMaxZoom, "max-zoom", 0, "last zoom level to seed")
	seedCmd.Flags().StringVar(&seedBBox, "bbox", "-180,-85,180,85", "bounding box as minLon,minLat,maxLon,maxLat")
	seedCmd.Flags().IntVar(&seedWorkers, "workers", 4, "number of concurrent tile builds")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	bounds, err := parseBBox(seedBBox)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	svc, cleanup, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return seed.Run(cmd.Context(), svc, seed.Options{
		Tileset: args[0],
		MinZoom: seedMinZoom,
		MaxZoom: seedMaxZoom,
		Bounds:  bounds,
		Workers: seedWorkers,
	})
}

// parseBBox parses "minLon,minLat,maxLon,maxLat".
func parseBBox(s string) ([4]float64, error) {
	var bounds [4]float64

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return bounds, fmt.Errorf("bbox must have 4 comma-separated values, got %d", len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return bounds, fmt.Errorf("invalid bbox value %q: %w", p, err)
		}
		bounds[i] = v
	}
	if bounds[0] >= bounds[2] || bounds[1] >= bounds[3] {
		return bounds, fmt.Errorf("bbox minimums must be smaller than maximums")
	}
	return bounds, nil
}
