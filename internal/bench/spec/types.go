package spec

// RunSpec is the YAML description of one benchmark run: which backends to
// drive, how the workload looks, and the assumptions fed to the cost model.
type RunSpec struct {
	Backends map[string]Backend `yaml:"backends"`
	Workload Workload           `yaml:"workload"`
	Cost     CostAssumptions    `yaml:"cost"`
}

type Backend struct {
	Type       string `yaml:"type"`
	Connection string `yaml:"connection"`

	// Elasticsearch
	Index    string `yaml:"index,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// Object store
	Bucket    string `yaml:"bucket,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
	Prefix    string `yaml:"prefix,omitempty"`

	// Postgres
	Table string `yaml:"table,omitempty"`
}

type Workload struct {
	Trials     int      `yaml:"trials"`
	K          int      `yaml:"k"`
	Dimensions int      `yaml:"dimensions"`
	Queries    []string `yaml:"queries,omitempty"`
	QuerySeed  int64    `yaml:"query_seed,omitempty"`
	QueryCount int      `yaml:"query_count,omitempty"`
	Parallel   bool     `yaml:"parallel,omitempty"`
	TimeoutSec int      `yaml:"timeout_seconds,omitempty"`
}

type CostAssumptions struct {
	MonthlyQueries int64   `yaml:"monthly_queries,omitempty"`
	StorageGB      float64 `yaml:"storage_gb,omitempty"`
	PricingPath    string  `yaml:"pricing_path,omitempty"`
}
