// Package format renders snapshots for the get command's output flag.
package format

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type DataFormat string

const (
	FORMAT_VALUE DataFormat = "value"
	FORMAT_JSON  DataFormat = "json"
	FORMAT_YAML  DataFormat = "yaml"
)

func (df DataFormat) String() string {
	return string(df)
}

// Set implements pflag.Value so the format can be used as a flag type.
func (df *DataFormat) Set(v string) error {
	switch DataFormat(v) {
	case FORMAT_VALUE, FORMAT_JSON, FORMAT_YAML:
		*df = DataFormat(v)
		return nil
	default:
		return fmt.Errorf("must be one of %v", []DataFormat{
			FORMAT_VALUE, FORMAT_JSON, FORMAT_YAML,
		})
	}
}

func (df DataFormat) Type() string {
	return "DataFormat"
}

// Marshal renders data as outFormat. The "value" format has no structured
// rendering; callers print bare values themselves.
func Marshal(data interface{}, outFormat DataFormat) ([]byte, error) {
	switch outFormat {
	case FORMAT_JSON:
		if bytes, err := json.MarshalIndent(data, "", "  "); err != nil {
			return nil, fmt.Errorf("failed to marshal data into JSON: %w", err)
		} else {
			return bytes, nil
		}
	case FORMAT_YAML:
		if bytes, err := yaml.Marshal(data); err != nil {
			return nil, fmt.Errorf("failed to marshal data into YAML: %w", err)
		} else {
			return bytes, nil
		}
	case FORMAT_VALUE:
		return nil, fmt.Errorf("this data format cannot be marshaled")
	default:
		return nil, fmt.Errorf("unknown data format: %s", outFormat)
	}
}
