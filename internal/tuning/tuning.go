package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	ListenAddr     string `yaml:"listen_addr"`
	TickIntervalMs int    `yaml:"tick_interval_ms"`

	// Search batching: candidate origins verified per cooperative step.
	SearchBatchSize int `yaml:"search_batch_size"`

	DataDir      string `yaml:"data_dir"`
	TemplatesDB  string `yaml:"templates_db"`
	JournalDir   string `yaml:"journal_dir"`
	UndoCapacity int    `yaml:"undo_capacity"`
}

func Defaults() Tuning {
	return Tuning{
		ProtocolVersion: "1.0",
		ListenAddr:      ":8080",
		TickIntervalMs:  20,
		SearchBatchSize: 256,
		DataDir:         "./data",
		TemplatesDB:     "",
		JournalDir:      "",
		UndoCapacity:    64,
	}
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}
