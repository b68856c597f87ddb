package underwriters

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/utils"
)

//go:embed underwriters.schema.json
var schemaJSON []byte

// ErrSchemaValidation is returned when reference data does not match the schema.
var ErrSchemaValidation = errors.New("underwriter data failed schema validation")

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// LoadFile reads a JSON underwriter list from disk.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open underwriters file: %w", err)
	}
	defer f.Close()

	store, err := Load(f)
	if err != nil {
		return nil, err
	}

	utils.Logger.Info("Loaded underwriters",
		zap.String("path", path),
		zap.Int("count", store.Len()),
	)

	return store, nil
}

// Load decodes a JSON underwriter list, validates it against the embedded
// schema and builds a Store.
func Load(r io.Reader) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read underwriters: %w", err)
	}

	if err := ValidateJSON(data); err != nil {
		return nil, err
	}

	var list []*models.Underwriter
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode underwriters: %w", err)
	}

	return NewStore(list)
}

// ValidateJSON checks raw underwriter JSON against the schema.
func ValidateJSON(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrSchemaValidation, strings.Join(errs, "; "))
	}

	return nil
}
