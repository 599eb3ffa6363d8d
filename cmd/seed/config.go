package main

import "flag"

type cliConfig struct {
	SpecPath string

	PgConnStr     string
	EsAddresses   string
	EsIndex       string
	MinioEndpoint string
	MinioBucket   string
	MinioAccess   string
	MinioSecret   string

	Input      string
	Count      int
	Dimensions int
	Seed       int64
	BatchSize  int
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.SpecPath, "spec", "", "Path to run spec YAML; seeds every backend it names")

	flag.StringVar(&cfg.PgConnStr, "pg", "", "PostgreSQL connection string")
	flag.StringVar(&cfg.EsAddresses, "es-addresses", "", "Elasticsearch addresses, comma-separated")
	flag.StringVar(&cfg.EsIndex, "es-index", "vectors", "Elasticsearch index name")
	flag.StringVar(&cfg.MinioEndpoint, "minio", "", "Object store endpoint (host:port)")
	flag.StringVar(&cfg.MinioBucket, "minio-bucket", "vectors", "Object store bucket name")
	flag.StringVar(&cfg.MinioAccess, "minio-access-key", "", "Object store access key")
	flag.StringVar(&cfg.MinioSecret, "minio-secret-key", "", "Object store secret key")

	flag.StringVar(&cfg.Input, "input", "", "JSONL file with documents to seed (omit for synthetic vectors)")
	flag.IntVar(&cfg.Count, "count", 1000, "Number of synthetic vectors when no input file is given")
	flag.IntVar(&cfg.Dimensions, "dims", 768, "Vector dimensionality")
	flag.Int64Var(&cfg.Seed, "seed", 1, "Seed for synthetic vector generation")
	flag.IntVar(&cfg.BatchSize, "batch", 500, "Upsert batch size")

	flag.Parse()
	return cfg
}
