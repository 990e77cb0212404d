package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	qdxerrors "github.com/alexisbeaulieu97/qdxstudio/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseDocument loads a settings file from disk, validates it, and returns it.
func ParseDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, qdxerrors.NewParseError(path, 0, err)
	}
	return DecodeDocument(path, data)
}

// DecodeDocument parses YAML bytes. path is only used in error messages.
func DecodeDocument(path string, data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, qdxerrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateDocument(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// MarshalDocument renders doc as YAML.
func MarshalDocument(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// ValidateDocument checks the structural rules of a settings document.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return qdxerrors.NewValidationError("document", "document is nil", nil)
	}
	return ConvertValidationErrors(validatorInstance().Struct(doc))
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
