package formatter

import (
	"encoding/json"

	"github.com/verdalab/garden-backend/internal/entity"
)

const (
	jsonContentType   = "application/json"
	jsonFileExtension = ".json"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (jf *JSONFormatter) Format(summary *entity.GardenSummary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}

func (jf *JSONFormatter) ContentType() string {
	return jsonContentType
}

func (jf *JSONFormatter) FileExtension() string {
	return jsonFileExtension
}
