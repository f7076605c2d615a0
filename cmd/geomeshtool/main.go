// geomeshtool is a CLI utility for converting GeoJSON vector data into
// render-ready geometry buffers.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/geomesh/internal/config"
	"github.com/Faultbox/geomesh/internal/ingest"
	"github.com/Faultbox/geomesh/internal/logger"
	"github.com/Faultbox/geomesh/pkg/feature"
	"github.com/Faultbox/geomesh/pkg/tessellate"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := config.ParseFlags(os.Args[2:])

	switch command {
	case "info":
		cmdInfo(args)
	case "convert":
		cmdConvert(args)
	case "dump":
		cmdDump(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`geomeshtool - GeoJSON to geometry buffer converter

Usage:
  geomeshtool <command> [options] <args>

Commands:
  info <file.geojson>               Show input statistics
  convert <file.geojson>            Convert and print buffer statistics
  dump <file.geojson> <out.bin>     Convert and write binary buffers

Options are shared across commands (--config, --crs, --source-crs,
--structure, --merge, --no-merge, --debug). Configuration is read from
./geomesh.yaml when present; flags override the file.

Examples:
  geomeshtool info buildings.geojson
  geomeshtool convert buildings.geojson
  geomeshtool dump buildings.geojson buildings.bin`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// loadAll loads the config and converts the input file into meshes.
func loadAll(path string) (*feature.Collection, []*tessellate.Mesh, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		return nil, nil, err
	}
	defer log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	opts := ingest.Options{Collection: cfg.Convert.FeatureOptions()}
	opts.Collection.Style = buildStyle(cfg)
	col, err := ingest.ConvertBytes(data, opts)
	if err != nil {
		return nil, nil, err
	}

	meshes, err := tessellate.ConvertCollection(col, tessellate.Options{Logger: log})
	if err != nil {
		return nil, nil, err
	}
	return col, meshes, nil
}

// buildStyle derives a style from the conversion settings.
func buildStyle(cfg *config.Config) *feature.Style {
	st := &feature.Style{
		Fill:   feature.ConstantColor(feature.Color{R: 200, G: 200, B: 200}),
		Stroke: feature.ConstantColor(feature.Color{R: 255, G: 255, B: 255}),
	}
	if prop := cfg.Convert.ExtrudeProperty; prop != "" {
		st.Extrusion = feature.ComputedScalar(func(props map[string]any) float64 {
			switch v := props[prop].(type) {
			case float64:
				return v
			case int:
				return float64(v)
			}
			return 0
		})
	}
	return st
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: geomeshtool info <file.geojson>")
		os.Exit(1)
	}

	col, _, err := loadAll(args[0])
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Input:     %s\n", args[0])
	fmt.Printf("CRS:       %s\n", col.CRS)
	fmt.Printf("Structure: %dd\n", col.Size)
	fmt.Printf("Features:  %d\n", len(col.Features))
	for i, f := range col.Features {
		fmt.Printf("  [%d] %-7s geometries=%d vertices=%d\n",
			i, f.Kind, f.GeometryCount(), f.VertexCount())
	}
	if col.Extent != nil && !col.Extent.IsEmpty() {
		fmt.Printf("Extent:    [%.6f %.6f] - [%.6f %.6f]\n",
			col.Extent.MinX, col.Extent.MinY, col.Extent.MaxX, col.Extent.MaxY)
	}
	if !col.Altitude.IsEmpty() {
		fmt.Printf("Altitude:  %.2f - %.2f\n", col.Altitude.Min, col.Altitude.Max)
	}
}

func cmdConvert(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: geomeshtool convert <file.geojson>")
		os.Exit(1)
	}

	_, meshes, err := loadAll(args[0])
	if err != nil {
		fatal(err)
	}

	var totalVerts, totalIndices int
	for i, m := range meshes {
		fmt.Printf("mesh %d: %-10s vertices=%-7d indices=%-7d colors=%d batchIDs=%d\n",
			i, m.Primitive, m.VertexCount(), len(m.Indices), len(m.Colors)/3, len(m.BatchIDs))
		totalVerts += m.VertexCount()
		totalIndices += len(m.Indices)
	}
	fmt.Printf("total: %d meshes, %d vertices, %d indices\n",
		len(meshes), totalVerts, totalIndices)
}

func cmdDump(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: geomeshtool dump <file.geojson> <out.bin>")
		os.Exit(1)
	}

	_, meshes, err := loadAll(args[0])
	if err != nil {
		fatal(err)
	}
	if err := writeMeshes(args[1], meshes); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %d meshes to %s\n", len(meshes), args[1])
}
