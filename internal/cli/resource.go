package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ResourceMetadata holds the kind of a manifest document and its optional metadata.
type ResourceMetadata struct {
	Kind     string         `json:"kind" yaml:"kind"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata"`
}

// Resource is one manifest document. JSON holds its spec field, ready to post.
type Resource struct {
	JSON     []byte
	Metadata ResourceMetadata
}

// Label names the resource in status output.
func (r Resource) Label() string {
	if name, ok := r.Metadata.Metadata["name"].(string); ok && name != "" {
		return name
	}
	return r.Metadata.Kind
}

type ResourceList []Resource

// creationOrder lists the kinds in the order a manifest is applied, so documents
// can refer to resources created earlier in the same file.
var creationOrder = []string{"collection", "project", "object", "item", "note"}

// LoadResourceFromMultiYAMLFile reads a manifest of kind/spec documents and groups
// them by kind. If data is provided, it is used instead of reading the file.
func LoadResourceFromMultiYAMLFile(filename string, data ...[]byte) (map[string]ResourceList, error) {
	var yamlData []byte
	var err error

	if len(data) > 0 {
		yamlData = data[0]
	} else {
		yamlData, err = os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %v", err)
		}
	}

	yamlData = replaceTabsWithSpaces(yamlData)

	yamlData, err = PreprocessYAML(yamlData)
	if err != nil {
		return nil, err
	}

	docs, err := ParseMultiYAMLFromBytes(yamlData)
	if err != nil {
		return nil, err
	}

	result := make(map[string]ResourceList)
	for _, doc := range docs {
		kindName, ok := doc["kind"].(string)
		if !ok {
			return nil, fmt.Errorf("resource kind: %v is not a string", doc["kind"])
		}
		kind, err := LookupKind(kindName)
		if err != nil {
			return nil, err
		}
		if !kind.Creatable {
			return nil, fmt.Errorf("%s resources cannot be created", kind.Name)
		}

		specAny, exists := doc["spec"]
		if !exists {
			return nil, fmt.Errorf("spec not found in resource: %v", kindName)
		}
		spec, err := StrictMapAnyAnyToStringAny(specAny)
		if err != nil {
			return nil, fmt.Errorf("spec has invalid format: %v", err)
		}

		var metadata map[string]any
		if m, exists := doc["metadata"]; exists && m != nil {
			metadata, err = StrictMapAnyAnyToStringAny(m)
			if err != nil {
				return nil, fmt.Errorf("metadata has invalid format: %v", err)
			}
		}

		jsonData, err := json.Marshal(spec)
		if err != nil {
			return nil, fmt.Errorf("unable to parse resource: %v", err)
		}

		result[kind.Name] = append(result[kind.Name], Resource{
			JSON: jsonData,
			Metadata: ResourceMetadata{
				Kind:     kind.Name,
				Metadata: metadata,
			},
		})
	}

	return result, nil
}

// replaceTabsWithSpaces replaces all tab characters with four spaces
func replaceTabsWithSpaces(b []byte) []byte {
	return []byte(strings.ReplaceAll(string(b), "\t", "    "))
}

// StrictMapAnyAnyToStringAny converts a decoded YAML map to a map with string keys
// at every level, failing on any other key type.
func StrictMapAnyAnyToStringAny(input any) (map[string]any, error) {
	converted, err := convertRecursively(input)
	if err != nil {
		return nil, err
	}
	result, ok := converted.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected top-level object to be a map[string]any, got %T", converted)
	}
	return result, nil
}

func convertRecursively(input any) (any, error) {
	switch v := input.(type) {
	case map[any]any:
		result := make(map[string]any)
		for k, val := range v {
			strKey, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string map key: %v (type %T)", k, k)
			}
			convertedVal, err := convertRecursively(val)
			if err != nil {
				return nil, err
			}
			result[strKey] = convertedVal
		}
		return result, nil

	case map[string]any:
		for k, val := range v {
			convertedVal, err := convertRecursively(val)
			if err != nil {
				return nil, err
			}
			v[k] = convertedVal
		}
		return v, nil

	case []any:
		for i, elem := range v {
			convertedElem, err := convertRecursively(elem)
			if err != nil {
				return nil, err
			}
			v[i] = convertedElem
		}
		return v, nil

	default:
		return v, nil
	}
}
