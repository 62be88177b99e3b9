package application

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/pacerhq/pacer/pkg/domain/adaptation"
	"github.com/pacerhq/pacer/pkg/domain/ai"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

// Output validation runs two passes, always in order: structural (parse +
// schema bounds) then semantic (cross-field rules). Invalid output is
// rejected wholesale - nothing is defaulted, clamped or repaired, so a
// failure always forces a re-prompt or a user-facing failure message.

const goalPlanSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["title", "tasks", "explanation"],
  "properties": {
    "title": { "type": "string", "minLength": 1, "maxLength": 200 },
    "explanation": { "type": "string", "minLength": 1, "maxLength": 2000 },
    "tasks": {
      "type": "array",
      "minItems": 1,
      "maxItems": 20,
      "items": {
        "type": "object",
        "required": ["title", "difficulty", "frequency", "estimated_duration", "is_optional", "order_index"],
        "properties": {
          "title": { "type": "string", "minLength": 1, "maxLength": 200 },
          "difficulty": { "type": "string", "enum": ["easy", "medium", "hard", "extreme"] },
          "frequency": { "type": "string", "enum": ["daily", "weekly", "milestone"] },
          "estimated_duration": { "type": "integer", "minimum": 5, "maximum": 480 },
          "is_optional": { "type": "boolean" },
          "order_index": { "type": "integer", "minimum": 0 }
        }
      }
    }
  }
}`

const proposalSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["type", "reason", "explanation", "suggested_changes"],
  "properties": {
    "type": { "type": "string", "enum": ["difficulty_change", "reschedule", "buffer_add"] },
    "reason": { "type": "string", "minLength": 1, "maxLength": 1000 },
    "explanation": { "type": "string", "minLength": 1, "maxLength": 2000 },
    "suggested_changes": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": { "type": "string", "enum": ["difficulty_change", "reschedule", "buffer_add"] },
        "difficulty_change": {
          "type": "object",
          "required": ["from_difficulty", "to_difficulty", "affected_task_ids"],
          "properties": {
            "from_difficulty": { "type": "string", "enum": ["easy", "medium", "hard", "extreme"] },
            "to_difficulty": { "type": "string", "enum": ["easy", "medium", "hard", "extreme"] },
            "affected_task_ids": {
              "type": "array",
              "minItems": 1,
              "items": { "type": "string", "minLength": 1 }
            }
          }
        },
        "reschedule": {
          "type": "object",
          "required": ["affected_task_ids", "shift_days"],
          "properties": {
            "affected_task_ids": {
              "type": "array",
              "minItems": 1,
              "items": { "type": "string", "minLength": 1 }
            },
            "shift_days": { "type": "integer", "minimum": 1, "maximum": 30 }
          }
        },
        "buffer_add": {
          "type": "object",
          "required": ["after_task_id", "buffer_days"],
          "properties": {
            "after_task_id": { "type": "string", "minLength": 1 },
            "buffer_days": { "type": "integer", "minimum": 1, "maximum": 14 }
          }
        }
      }
    },
    "previous_state": { "type": "object" },
    "new_state": { "type": "object" }
  }
}`

var (
	goalPlanSchemaLoader = gojsonschema.NewStringLoader(goalPlanSchemaJSON)
	proposalSchemaLoader = gojsonschema.NewStringLoader(proposalSchemaJSON)
)

// ValidateGoalPlan parses and validates a plan-generation response.
func ValidateGoalPlan(text string) (*plan.GoalPlan, error) {
	payload, err := structuralPass(text, goalPlanSchemaLoader)
	if err != nil {
		return nil, err
	}

	var p plan.GoalPlan
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, ai.NewError(ai.CodeInvalidResponse, fmt.Sprintf("response does not decode as a goal plan: %v", err))
	}

	// Semantic pass: order indexes must be unique across the plan.
	seen := make(map[int]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		if seen[t.OrderIndex] {
			return nil, ai.NewError(ai.CodeConstraintViolation, "duplicate order_index in generated plan").
				WithDetails(fmt.Sprintf("order_index %d appears more than once", t.OrderIndex))
		}
		seen[t.OrderIndex] = true
	}

	return &p, nil
}

// ValidateProposal parses and validates an adaptation response against the
// task snapshot that was supplied to the prompt builder.
func ValidateProposal(text string, snapshot []plan.TaskSummary) (*adaptation.Proposal, error) {
	payload, err := structuralPass(text, proposalSchemaLoader)
	if err != nil {
		return nil, err
	}

	var p adaptation.Proposal
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, ai.NewError(ai.CodeInvalidResponse, fmt.Sprintf("response does not decode as a proposal: %v", err))
	}

	if err := checkProposalConstraints(&p, snapshot); err != nil {
		return nil, err
	}
	return &p, nil
}

// checkProposalConstraints is the semantic pass for adaptation proposals.
func checkProposalConstraints(p *adaptation.Proposal, snapshot []plan.TaskSummary) error {
	if p.SuggestedChanges.Type != p.Type {
		return ai.NewError(ai.CodeConstraintViolation, "suggested_changes.type does not match the proposal type").
			WithDetails(fmt.Sprintf("type %q vs suggested_changes.type %q", p.Type, p.SuggestedChanges.Type))
	}
	if p.SuggestedChanges.Variant() != p.Type {
		return ai.NewError(ai.CodeConstraintViolation, "suggested_changes must carry exactly the variant matching its type")
	}

	known := make(map[string]bool, len(snapshot))
	for _, t := range snapshot {
		known[t.ID] = true
	}

	// Exhaustive on the adaptation type: adding a type fails to compile the
	// Variant switch in the domain package and must be handled here.
	switch p.Type {
	case adaptation.TypeDifficultyChange:
		c := p.SuggestedChanges.DifficultyChange
		if steps := c.FromDifficulty.StepsTo(c.ToDifficulty); steps != 1 {
			return ai.NewError(ai.CodeConstraintViolation, "difficulty may change by no more than one level at a time").
				WithDetails(fmt.Sprintf("%s -> %s", c.FromDifficulty, c.ToDifficulty))
		}
		if err := checkKnownIDs(c.AffectedTaskIDs, known); err != nil {
			return err
		}
	case adaptation.TypeReschedule:
		c := p.SuggestedChanges.Reschedule
		if err := checkKnownIDs(c.AffectedTaskIDs, known); err != nil {
			return err
		}
	case adaptation.TypeBufferAdd:
		c := p.SuggestedChanges.BufferAdd
		if err := checkKnownIDs([]string{c.AfterTaskID}, known); err != nil {
			return err
		}
	default:
		return ai.NewError(ai.CodeConstraintViolation, fmt.Sprintf("unknown adaptation type %q", p.Type))
	}

	return nil
}

func checkKnownIDs(ids []string, known map[string]bool) error {
	var missing []string
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return ai.NewError(ai.CodeConstraintViolation, "proposal references task ids that are not in the snapshot").
			WithDetails(missing...)
	}
	return nil
}

// structuralPass extracts the JSON payload, rejects unparseable text, and
// checks it against the schema. It returns the clean payload for decoding.
func structuralPass(text string, schema gojsonschema.JSONLoader) (string, error) {
	payload := extractJSONPayload(text)

	var probe interface{}
	if err := json.Unmarshal([]byte(payload), &probe); err != nil {
		return "", ai.NewError(ai.CodeInvalidResponse, "response is not valid JSON")
	}

	result, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(payload))
	if err != nil {
		return "", ai.NewError(ai.CodeInvalidResponse, fmt.Sprintf("schema check failed to run: %v", err))
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return "", ai.NewError(ai.CodeValidationFailed, "response violates the output schema").WithDetails(details...)
	}

	return payload, nil
}

// extractJSONPayload strips markdown fences and surrounding chatter from a
// completion. This is parse normalization, not repair: the content between
// the braces is validated untouched.
func extractJSONPayload(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
