package openai

import (
	"encoding/json"

	"github.com/plateful/dishq/internal/domain/query"
)

// toolName is the single function the model is forced to call.
const toolName = "translate_to_api_query"

const toolDescription = "Translate the user's request into a set of " +
	"parameters in preparation for a call to a recipe search API."

// instructions describe field semantics to the model. Serialization into the
// downstream query-string dialect happens locally in query.Spec.Compile.
const instructions = `Your job is to convert the user's free-form recipe request into the ` + toolName + ` tool call parameters.

Parameter notes:
query - the natural language recipe search query, always required;
cuisine - cuisines the recipes must match, only values mentioned in the user's request, otherwise an empty array;
excludeCuisine - cuisines the recipes must not match, otherwise an empty array;
diet - diets for which the recipes must be suitable; the connector describes how an entry combines with the previous one: AND means the recipes must satisfy both, OR means either is acceptable; an empty array when no diet is mentioned;
intolerances - intolerances the recipes must account for, otherwise an empty array;
includeIngredients - each ingredient the user wants in the recipe as a separate value, otherwise an empty array;
excludeIngredients - each ingredient the user wants kept out of the recipe as a separate value, otherwise an empty array;
type - the meal type if one is mentioned, otherwise null;
maxReadyTime - the maximum time in minutes to prepare and cook, otherwise null.`

// toolParameters builds the strict JSON schema for the tool call. The cuisine
// enumeration is defined once under $defs and referenced from both the
// include and exclude fields so the two vocabularies cannot drift. Every
// field is required and additional properties are forbidden: the decoded
// arguments always carry every key, even when empty.
func toolParameters() json.RawMessage {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The (natural language) recipe search query",
			},
			"cuisine": map[string]any{
				"type":        "array",
				"items":       map[string]any{"$ref": "#/$defs/cuisine"},
				"description": "Cuisine values mentioned in the user's request. Empty when none are mentioned.",
			},
			"excludeCuisine": map[string]any{
				"type":        "array",
				"items":       map[string]any{"$ref": "#/$defs/cuisine"},
				"description": "Cuisine values the recipes must not match. Empty when none are mentioned.",
			},
			"diet": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"diet": map[string]any{"$ref": "#/$defs/diet"},
						"connector": map[string]any{
							"type": "string",
							"enum": []string{string(query.ConnectorAND), string(query.ConnectorOR)},
						},
					},
					"required":             []string{"diet", "connector"},
					"additionalProperties": false,
				},
				"description": "Diets the recipes must be suitable for. Empty when none are mentioned.",
			},
			"intolerances": map[string]any{
				"type":        "array",
				"items":       map[string]any{"$ref": "#/$defs/intolerance"},
				"description": "Intolerances the recipes must account for. Empty when none are mentioned.",
			},
			"includeIngredients": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Ingredients to include, one value each. Empty when none are mentioned.",
			},
			"excludeIngredients": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Ingredients to exclude, one value each. Empty when none are mentioned.",
			},
			"type": map[string]any{
				"type":        []string{"string", "null"},
				"enum":        mealTypeEnum(),
				"description": "The meal type, or null when none is mentioned.",
			},
			"maxReadyTime": map[string]any{
				"type":        []string{"number", "null"},
				"description": "Maximum time in minutes to prepare and cook, or null when none is mentioned.",
			},
		},
		"$defs": map[string]any{
			"cuisine": map[string]any{
				"type":        "string",
				"description": "Available cuisine values to choose from",
				"enum":        cuisineEnum(),
			},
			"diet": map[string]any{
				"type":        "string",
				"description": "Available diet values to choose from",
				"enum":        dietEnum(),
			},
			"intolerance": map[string]any{
				"type":        "string",
				"description": "Available intolerance values to choose from",
				"enum":        intoleranceEnum(),
			},
		},
		"required": []string{
			"query", "cuisine", "excludeCuisine", "diet", "intolerances",
			"includeIngredients", "excludeIngredients", "type", "maxReadyTime",
		},
		"additionalProperties": false,
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		panic("marshal tool schema: " + err.Error())
	}
	return raw
}

func cuisineEnum() []string {
	out := make([]string, len(query.Cuisines))
	for i, v := range query.Cuisines {
		out[i] = string(v)
	}
	return out
}

func dietEnum() []string {
	out := make([]string, len(query.Diets))
	for i, v := range query.Diets {
		out[i] = string(v)
	}
	return out
}

func intoleranceEnum() []string {
	out := make([]string, len(query.Intolerances))
	for i, v := range query.Intolerances {
		out[i] = string(v)
	}
	return out
}

func mealTypeEnum() []string {
	out := make([]string, len(query.MealTypes))
	for i, v := range query.MealTypes {
		out[i] = string(v)
	}
	return out
}
