package report

import (
	"fmt"
	"time"

	"github.com/devicelab-dev/flowdigest/pkg/interaction"
	json "github.com/json-iterator/go"
)

// ExportVersion is the interactions export schema version.
const ExportVersion = "1.0.0"

// Export is the machine-readable form of an interactions report.
type Export struct {
	Version      string                    `json:"version"`
	Flow         string                    `json:"flow"`
	SourceFile   string                    `json:"sourceFile,omitempty"`
	GeneratedAt  time.Time                 `json:"generatedAt"`
	Count        int                       `json:"count"`
	Kinds        map[interaction.Kind]int  `json:"kinds"`
	Interactions []interaction.Interaction `json:"interactions"`
}

// BuildExport assembles an export for the given interactions.
func BuildExport(flowName, sourceFile string, interactions []interaction.Interaction, now time.Time) *Export {
	kinds := make(map[interaction.Kind]int)
	for _, in := range interactions {
		kinds[in.Kind]++
	}
	if interactions == nil {
		interactions = []interaction.Interaction{}
	}
	return &Export{
		Version:      ExportVersion,
		Flow:         flowName,
		SourceFile:   sourceFile,
		GeneratedAt:  now.UTC(),
		Count:        len(interactions),
		Kinds:        kinds,
		Interactions: interactions,
	}
}

// WriteExport writes the export as JSON to path.
func WriteExport(path string, export *Export) error {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	return WriteFile(path, append(data, '\n'))
}
