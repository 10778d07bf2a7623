package structured

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"
)

const (
	propertiesKey           = "properties"
	additionalPropertiesKey = "additionalProperties"
	typeKey                 = "type"
	requiredKey             = "required"
	itemsKey                = "items"
)

// Schema reflects T into a JSON schema accepted by strict structured outputs:
// every object closed, every property required.
func Schema[T any]() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}

	var v T
	raw, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	delete(schema, "$schema")
	delete(schema, "$id")

	closeObjects(schema)
	return schema, nil
}

func closeObjects(schema map[string]any) {
	properties, hasProps := schema[propertiesKey].(map[string]any)

	if t, ok := schema[typeKey].(string); ok && t == "object" {
		schema[additionalPropertiesKey] = false

		if hasProps && len(properties) > 0 {
			required := make([]string, 0, len(properties))
			for name := range properties {
				required = append(required, name)
			}
			sort.Strings(required)
			schema[requiredKey] = required
		}
	}

	for _, prop := range properties {
		if m, ok := prop.(map[string]any); ok {
			closeObjects(m)
		}
	}

	if items, ok := schema[itemsKey].(map[string]any); ok {
		closeObjects(items)
	}
}
