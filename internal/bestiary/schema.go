package bestiary

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Structural validation of the raw document before it is decoded into typed
// records. The semantic rules (positive health, hostility tokens, the
// melee-capability invariant) stay in buildArchetype; the schema catches
// shape mistakes with a precise JSON-pointer location.

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "bestiary",
  "type": "object",
  "minProperties": 1,
  "additionalProperties": {
    "type": "object",
    "required": [
      "model", "idle_animation", "walk_animation", "scream_animation",
      "dying_animation", "bones", "walk_speed", "scale", "health",
      "close_combat_distance", "can_use_weapons", "hostility"
    ],
    "properties": {
      "model": {"type": "string"},
      "attack_animations": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["animation", "stick_timestamp", "timestamp", "damage", "speed"],
          "properties": {
            "animation": {"type": "string"},
            "stick_timestamp": {"type": "number"},
            "timestamp": {"type": "number"},
            "damage": {
              "type": "object",
              "required": ["kind", "amount"],
              "properties": {
                "kind": {"type": "string"},
                "amount": {"type": "number"}
              }
            },
            "speed": {"type": "number"}
          }
        }
      },
      "idle_animation": {"type": "string"},
      "walk_animation": {"type": "string"},
      "scream_animation": {"type": "string"},
      "aim_animation": {"type": "string"},
      "dying_animation": {"type": "string"},
      "bones": {
        "type": "object",
        "required": ["weapon_hand", "left_leg", "right_leg", "head", "hips"],
        "properties": {
          "weapon_hand": {"type": "string"},
          "left_leg": {"type": "string"},
          "right_leg": {"type": "string"},
          "head": {"type": "string"},
          "hips": {"type": "string"},
          "spine": {"type": "string"}
        }
      },
      "walk_speed": {"type": "number"},
      "scale": {"type": "number"},
      "weapon_scale": {"type": "number"},
      "health": {"type": "number"},
      "v_aim_angle_hack": {"type": "number"},
      "close_combat_distance": {"type": "number"},
      "can_use_weapons": {"type": "boolean"},
      "pain_sounds": {"type": "array", "items": {"type": "string"}},
      "scream_sounds": {"type": "array", "items": {"type": "string"}},
      "idle_sounds": {"type": "array", "items": {"type": "string"}},
      "attack_sounds": {"type": "array", "items": {"type": "string"}},
      "hostility": {"type": "string", "enum": ["Everyone", "OtherSpecies", "Player"]}
    }
  }
}`

var compileSchema = sync.OnceValue(func() *jsonschema.Schema {
	return jsonschema.MustCompileString("bestiary.schema.json", schemaJSON)
})

// validateSchema checks the raw YAML document against the bestiary schema.
// The document is round-tripped through encoding/json so the validator sees
// the value types it expects.
func validateSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing bestiary: %w", err)
	}

	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalizing bestiary document: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(jsonBytes, &normalized); err != nil {
		return fmt.Errorf("normalizing bestiary document: %w", err)
	}

	if err := compileSchema().Validate(normalized); err != nil {
		return fmt.Errorf("bestiary schema validation: %w", err)
	}
	return nil
}
