package main

import "flag"

type cliConfig struct {
	SpecPath string

	// quick mode connections
	PgConnStr     string
	EsAddresses   string
	EsIndex       string
	MinioEndpoint string
	MinioBucket   string
	MinioAccess   string
	MinioSecret   string

	Trials     int
	K          int
	Dimensions int
	QuerySeed  int64
	QueryCount int
	Parallel   bool
	TimeoutSec int

	Volume    int64
	StorageGB float64
	Pricing   string

	Output string

	// setFlags records which flags were given explicitly, so spec-file
	// values are only overridden when the user actually asked for it.
	setFlags map[string]bool
}

func (c cliConfig) isSet(name string) bool {
	return c.setFlags[name]
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.SpecPath, "spec", "", "Path to run spec YAML (overrides quick-mode flags)")

	flag.StringVar(&cfg.PgConnStr, "pg", "", "PostgreSQL connection string")
	flag.StringVar(&cfg.EsAddresses, "es-addresses", "", "Elasticsearch addresses, comma-separated")
	flag.StringVar(&cfg.EsIndex, "es-index", "vectors", "Elasticsearch index name")
	flag.StringVar(&cfg.MinioEndpoint, "minio", "", "Object store endpoint (host:port)")
	flag.StringVar(&cfg.MinioBucket, "minio-bucket", "vectors", "Object store bucket name")
	flag.StringVar(&cfg.MinioAccess, "minio-access-key", "", "Object store access key")
	flag.StringVar(&cfg.MinioSecret, "minio-secret-key", "", "Object store secret key")

	flag.IntVar(&cfg.Trials, "trials", 10, "Number of timed queries per backend")
	flag.IntVar(&cfg.K, "k", 10, "Result-set size per query")
	flag.IntVar(&cfg.Dimensions, "dims", 768, "Vector dimensionality")
	flag.Int64Var(&cfg.QuerySeed, "query-seed", 1, "Seed for deterministic query vectors")
	flag.IntVar(&cfg.QueryCount, "query-count", 10, "Number of distinct query vectors to cycle through")
	flag.BoolVar(&cfg.Parallel, "parallel", false, "Run backend trial streams concurrently")
	flag.IntVar(&cfg.TimeoutSec, "timeout", 0, "Run timeout in seconds (0 = no timeout)")

	flag.Int64Var(&cfg.Volume, "volume", 0, "Assumed monthly query volume for cost estimates (0 = extrapolate from measured throughput)")
	flag.Float64Var(&cfg.StorageGB, "storage-gb", 1.0, "Assumed stored data in GB for cost estimates")
	flag.StringVar(&cfg.Pricing, "pricing", "", "Path to a pricing table YAML override")

	flag.StringVar(&cfg.Output, "output", "", "Output path for the JSON report")

	flag.Parse()

	cfg.setFlags = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		cfg.setFlags[f.Name] = true
	})

	return cfg
}
