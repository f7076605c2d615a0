package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagCRS       = flag.String("crs", "", "Output coordinate reference system")
	flagSourceCRS = flag.String("source-crs", "", "Input coordinate reference system")
	flagStructure = flag.Int("structure", 0, "Vertex structure, 2 or 3")
	flagMerge     = flag.Bool("merge", false, "Merge features of the same kind")
	flagNoMerge   = flag.Bool("no-merge", false, "One feature per input record")
)

// ParseFlags parses flags from args and returns the remaining
// positional arguments. Call before Load().
func ParseFlags(args []string) []string {
	flag.CommandLine.Parse(args)
	return flag.CommandLine.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagCRS != "" {
		cfg.Convert.CRS = *flagCRS
	}
	if *flagSourceCRS != "" {
		cfg.Convert.SourceCRS = *flagSourceCRS
	}
	if *flagStructure == 2 || *flagStructure == 3 {
		cfg.Convert.Structure = *flagStructure
	}
	if *flagMerge {
		cfg.Convert.MergeFeatures = true
	}
	if *flagNoMerge {
		cfg.Convert.MergeFeatures = false
	}
}
