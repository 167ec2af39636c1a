// Package config defines the pipeline configuration of the player ETL and
// loads it from a JSON or YAML file, a .env file and ETL_* environment
// variables, in that order of precedence (later wins).
//
// Example (YAML):
//
//	job: players
//	source:    { kind: file, file: { path: data/raw/raw_player_data_2023.csv } }
//	parser:    { kind: csv, options: { comma: ",", charset: utf-8 } }
//	transform: { reference_date: "2022-01-01" }
//	storage:   { kind: sqlite, db: { dsn: data/clean/football.db, table: players_2023 } }
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults used when the pipeline file leaves a field empty.
const (
	DefaultJob           = "players"
	DefaultSourcePath    = "data/raw/raw_player_data_2023.csv"
	DefaultStorageKind   = "sqlite"
	DefaultDSN           = "data/clean/football.db"
	DefaultTable         = "players_2023"
	DefaultBatchSize     = 500
	DefaultReferenceDate = "2022-01-01"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
)

// ErrUnknownFormat is returned by Load for files that are neither JSON nor
// YAML by extension.
var ErrUnknownFormat = errors.New("config: unknown pipeline file format")

// Pipeline is the top-level configuration object.
type Pipeline struct {
	// Job labels logs and metrics for this pipeline.
	Job string `json:"job" yaml:"job" validate:"required"`

	Source    Source    `json:"source" yaml:"source"`
	Parser    Parser    `json:"parser" yaml:"parser"`
	Transform Transform `json:"transform" yaml:"transform"`
	Storage   Storage   `json:"storage" yaml:"storage"`
	Log       Log       `json:"log" yaml:"log"`
	Metrics   Metrics   `json:"metrics" yaml:"metrics"`
}

// Source identifies the raw export. Only "file" exists today.
type Source struct {
	Kind string     `json:"kind" yaml:"kind" validate:"required"`
	File SourceFile `json:"file" yaml:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	Path string `json:"path" yaml:"path"`
}

// Parser selects how the raw bytes become a frame ("csv" or "xlsx").
type Parser struct {
	Kind string `json:"kind" yaml:"kind" validate:"required"`

	// Options is interpreted by the parser. Both kinds read trim_space,
	// infer_types and na_markers; CSV adds comma, charset and lazy_quotes,
	// XLSX adds sheet.
	Options Options `json:"options" yaml:"options"`
}

// Transform tunes the transform steps.
type Transform struct {
	// ReferenceDate is the YYYY-MM-DD date ages are computed against.
	ReferenceDate string `json:"reference_date" yaml:"reference_date" validate:"omitempty,datetime=2006-01-02"`

	// DropColumns replaces the default list of pruned columns when non-nil.
	DropColumns []string `json:"drop_columns" yaml:"drop_columns" validate:"dive,required"`

	// DedupPolicy is keep-first (default), keep-last or most-complete.
	DedupPolicy string `json:"dedup_policy" yaml:"dedup_policy" validate:"omitempty,oneof=keep-first keep-last most-complete"`
}

// Storage selects the sink for the grouped table.
type Storage struct {
	Kind string   `json:"kind" yaml:"kind" validate:"required"`
	DB   DBConfig `json:"db" yaml:"db"`
}

// DBConfig configures the database sink.
type DBConfig struct {
	// DSN is the driver connection string (a file path for sqlite).
	DSN string `json:"dsn" yaml:"dsn" validate:"required"`

	// Table is the destination table, replaced on every run. A companion
	// "<table>_columns" catalog is written next to it.
	Table string `json:"table" yaml:"table" validate:"required"`

	// BatchSize is the number of rows per bulk insert.
	BatchSize int `json:"batch_size" yaml:"batch_size" validate:"gte=0"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `json:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" validate:"omitempty,oneof=json console text"`
}

// Metrics selects the metrics backend. An empty or "none" backend disables
// metrics.
type Metrics struct {
	Backend        string `json:"backend" yaml:"backend" validate:"omitempty,oneof=none prometheus datadog"`
	PushgatewayURL string `json:"pushgateway_url" yaml:"pushgateway_url" validate:"omitempty,url"`
	DatadogAddr    string `json:"datadog_addr" yaml:"datadog_addr" validate:"omitempty,hostname_port"`
}

// Default returns the pipeline used when no file is given: the raw player
// export loaded into the local SQLite database.
func Default() Pipeline {
	p := Pipeline{}
	p.ApplyDefaults()
	return p
}

// ApplyDefaults fills empty fields with the package defaults.
func (p *Pipeline) ApplyDefaults() {
	setDefault(&p.Job, DefaultJob)
	setDefault(&p.Source.Kind, "file")
	setDefault(&p.Source.File.Path, DefaultSourcePath)
	if p.Parser.Kind == "" {
		p.Parser.Kind = parserKindFor(p.Source.File.Path)
	}
	if p.Parser.Options == nil {
		p.Parser.Options = Options{}
	}
	setDefault(&p.Transform.ReferenceDate, DefaultReferenceDate)
	setDefault(&p.Storage.Kind, DefaultStorageKind)
	if p.Storage.Kind == DefaultStorageKind {
		setDefault(&p.Storage.DB.DSN, DefaultDSN)
	}
	setDefault(&p.Storage.DB.Table, DefaultTable)
	if p.Storage.DB.BatchSize == 0 {
		p.Storage.DB.BatchSize = DefaultBatchSize
	}
	setDefault(&p.Log.Level, DefaultLogLevel)
	setDefault(&p.Log.Format, DefaultLogFormat)
}

func setDefault(dst *string, def string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = def
	}
}

func parserKindFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return "xlsx"
	}
	return "csv"
}

// Load reads the pipeline at path (JSON for .json, YAML for .yaml/.yml),
// overlays .env and ETL_* environment variables and fills defaults. An empty
// path starts from Default.
func Load(path string) (Pipeline, error) {
	var p Pipeline
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Pipeline{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if p, err = Decode(b, filepath.Ext(path)); err != nil {
			return Pipeline{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	// A missing .env is not an error.
	_ = godotenv.Load()

	if err := ApplyEnv(&p, nil); err != nil {
		return Pipeline{}, err
	}
	p.ApplyDefaults()
	return p, nil
}

// Decode parses a pipeline document. ext selects the format (".json",
// ".yaml" or ".yml", case-insensitive).
func Decode(b []byte, ext string) (Pipeline, error) {
	var p Pipeline
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(b, &p); err != nil {
			return Pipeline{}, fmt.Errorf("decode json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &p); err != nil {
			return Pipeline{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Pipeline{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return p, nil
}

// envOverrides are the ETL_* variables that override the pipeline file.
type envOverrides struct {
	Job            string `env:"ETL_JOB"`
	SourcePath     string `env:"ETL_SOURCE_PATH"`
	ParserKind     string `env:"ETL_PARSER_KIND"`
	StorageKind    string `env:"ETL_STORAGE_KIND"`
	DSN            string `env:"ETL_DB_DSN"`
	Table          string `env:"ETL_DB_TABLE"`
	BatchSize      int    `env:"ETL_DB_BATCH_SIZE"`
	ReferenceDate  string `env:"ETL_REFERENCE_DATE"`
	LogLevel       string `env:"ETL_LOG_LEVEL"`
	LogFormat      string `env:"ETL_LOG_FORMAT"`
	MetricsBackend string `env:"ETL_METRICS_BACKEND"`
	PushgatewayURL string `env:"ETL_PUSHGATEWAY_URL"`
	DatadogAddr    string `env:"ETL_DATADOG_ADDR"`
}

// ApplyEnv overlays ETL_* variables onto p. environ replaces the process
// environment when non-nil. Unset variables leave p untouched.
func ApplyEnv(p *Pipeline, environ map[string]string) error {
	var o envOverrides
	var err error
	if environ == nil {
		err = env.Parse(&o)
	} else {
		err = env.ParseWithOptions(&o, env.Options{Environment: environ})
	}
	if err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}

	override(&p.Job, o.Job)
	override(&p.Source.File.Path, o.SourcePath)
	override(&p.Parser.Kind, o.ParserKind)
	override(&p.Storage.Kind, o.StorageKind)
	override(&p.Storage.DB.DSN, o.DSN)
	override(&p.Storage.DB.Table, o.Table)
	if o.BatchSize > 0 {
		p.Storage.DB.BatchSize = o.BatchSize
	}
	override(&p.Transform.ReferenceDate, o.ReferenceDate)
	override(&p.Log.Level, o.LogLevel)
	override(&p.Log.Format, o.LogFormat)
	override(&p.Metrics.Backend, o.MetricsBackend)
	override(&p.Metrics.PushgatewayURL, o.PushgatewayURL)
	override(&p.Metrics.DatadogAddr, o.DatadogAddr)
	return nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Options is a free-form option bag with typed accessors. Accessors return
// def when a key is absent or holds an unexpected type.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def.
func (o Options) Rune(key string, def rune) rune {
	if s := o.String(key, ""); s != "" {
		return []rune(s)[0]
	}
	return def
}

// UnmarshalJSON makes a null or missing object decode to an empty map.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (o *Options) UnmarshalYAML(n *yaml.Node) error {
	var tmp map[string]any
	if err := n.Decode(&tmp); err != nil {
		return err
	}
	if tmp == nil {
		tmp = map[string]any{}
	}
	*o = Options(tmp)
	return nil
}
