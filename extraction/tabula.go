package extraction

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"substitution-plan-notifier/configuration"
	"substitution-plan-notifier/dto"
)

type tabulaTable struct {
	Data [][]tabulaCell `json:"data"`
}

type tabulaCell struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text"`
}

// ParseTabulaJSON turns tabula's JSON output into one grid of cell texts per table.
func ParseTabulaJSON(data []byte) ([][][]string, error) {
	var tables []tabulaTable

	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("tabula json malformed: %w", err)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("tabula json contains no tables")
	}

	pages := make([][][]string, 0, len(tables))

	for _, table := range tables {
		rows := make([][]string, 0, len(table.Data))

		for _, row := range table.Data {
			texts := make([]string, 0, len(row))

			for _, cell := range row {
				texts = append(texts, cell.Text)
			}

			rows = append(rows, texts)
		}

		pages = append(pages, rows)
	}

	return pages, nil
}

// TabulaExtractor runs the tabula jar over a PDF written to a temporary file.
type TabulaExtractor struct {
	settings configuration.ExtractionSettings
}

func NewTabulaExtractor(settings configuration.ExtractionSettings) *TabulaExtractor {
	return &TabulaExtractor{settings: settings}
}

func (t *TabulaExtractor) Extract(ctx context.Context, pdf []byte) (dto.ExtractionResult, error) {
	path := filepath.Join(t.settings.TempDir, uuid.NewString()+".pdf")

	if err := os.WriteFile(path, pdf, 0o600); err != nil {
		return dto.ExtractionResult{}, err
	}

	defer func() {
		if err := os.Remove(path); err != nil {
			logrus.Errorln("Failed to remove temp pdf: ", err.Error())
		}
	}()

	creationDate, err := ReadCreationDate(path)

	if err != nil {
		return dto.ExtractionResult{}, err
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, t.settings.JavaPath, "-jar", t.settings.TabulaJar, "-g", "-f", "JSON", path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err = cmd.Run(); err != nil {
		return dto.ExtractionResult{}, fmt.Errorf("tabula: %w: %s", err, stderr.String())
	}

	pages, err := ParseTabulaJSON(stdout.Bytes())

	if err != nil {
		return dto.ExtractionResult{}, err
	}

	return dto.ExtractionResult{Pages: pages, CreationDate: creationDate}, nil
}
