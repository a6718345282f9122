package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/raoelg/ttest-to-bayesfactor/internal"
	"github.com/raoelg/ttest-to-bayesfactor/internal/errors"
	"github.com/raoelg/ttest-to-bayesfactor/models"
	"github.com/raoelg/ttest-to-bayesfactor/ports"
)

// ImportStats counts the outcome of a ledger import
type ImportStats struct {
	Files    int
	Imported int
	Skipped  int
}

// ImportCalculations records every calculation found in the JSON files under
// dir. A file holds one calculation or an array of them, as served by the
// calculations API. Records without an id get one derived from their file and
// position so that importing the same export twice is rejected by the ledger.
func ImportCalculations(ctx context.Context, repo ports.CalculationRepository, dir string, logger *internal.Logger) (ImportStats, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	logger = logger.With("import")

	var stats ImportStats
	files, err := findCalculationFiles(dir)
	if err != nil {
		return stats, errors.Wrap(err, "failed to find calculation files")
	}
	logger.Info("Found %d calculation files to import", len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Files++

		calcs, err := loadCalculationsFromFile(file)
		if err != nil {
			logger.Warn("Failed to load calculations from %s: %v", file, err)
			stats.Skipped++
			continue
		}

		for i, calc := range calcs {
			if calc.ID == uuid.Nil {
				calc.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s#%d", file, i)))
			}
			if calc.RequestHash == "" {
				calc.RequestHash = models.Fingerprint(calc.Request()).String()
			}
			if calc.CreatedAt.IsZero() {
				calc.CreatedAt = time.Now().UTC()
			}
			if err := repo.Record(ctx, calc); err != nil {
				logger.Warn("Failed to import calculation %s from %s: %v", calc.ID, filepath.Base(file), err)
				stats.Skipped++
				continue
			}
			stats.Imported++
		}
	}

	logger.Info("Import complete: %d imported, %d skipped", stats.Imported, stats.Skipped)
	return stats, nil
}

func findCalculationFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

func loadCalculationsFromFile(filePath string) ([]*models.Calculation, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("not valid JSON")
	}

	root := gjson.ParseBytes(data)
	items := []gjson.Result{root}
	if root.IsArray() {
		items = root.Array()
	}

	calcs := make([]*models.Calculation, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, fmt.Errorf("element %d is not an object", i)
		}
		var calc models.Calculation
		if err := json.Unmarshal([]byte(item.Raw), &calc); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		calcs = append(calcs, &calc)
	}
	return calcs, nil
}
