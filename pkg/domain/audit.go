package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"
)

// Event is a single auditable action: an evaluation run, an AI call, a
// proposal decision. Events form a hash chain so that tampering with the
// history of AI-driven changes is detectable.
type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Action    string                 `json:"action"`
	Actor     string                 `json:"actor"` // "human", "ai" or "engine"
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	PrevHash  string                 `json:"prev_hash,omitempty"` // hash of the preceding event
	Hash      string                 `json:"hash,omitempty"`      // deterministic hash of this event
}

// CalculateHash generates a deterministic SHA256 hash of the event data,
// chained through PrevHash.
func (e *Event) CalculateHash() string {
	h := sha256.New()
	h.Write([]byte(e.PrevHash))
	h.Write([]byte(e.ID))
	h.Write([]byte(e.Timestamp.Format(time.RFC3339Nano)))
	h.Write([]byte(e.Action))
	h.Write([]byte(e.Actor))
	h.Write([]byte(canonicalJSON(e.Metadata)))
	return hex.EncodeToString(h.Sum(nil))
}

// canonicalJSON produces a deterministic JSON representation of metadata.
// Keys are sorted alphabetically so the hash is stable across runs.
func canonicalJSON(m map[string]interface{}) string {
	if len(m) == 0 {
		return ""
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]byte, 0, 256)
	ordered = append(ordered, '{')
	for i, k := range keys {
		if i > 0 {
			ordered = append(ordered, ',')
		}
		keyJSON, _ := json.Marshal(k)
		valJSON, _ := json.Marshal(m[k])
		ordered = append(ordered, keyJSON...)
		ordered = append(ordered, ':')
		ordered = append(ordered, valJSON...)
	}
	ordered = append(ordered, '}')

	return string(ordered)
}

// UsageStats tracks AI spend and evaluation telemetry for the workspace.
type UsageStats struct {
	TotalCommands int            `json:"total_commands"`
	Evaluations   int            `json:"evaluations"`
	LastCommandAt time.Time      `json:"last_command_at"`
	ProviderStats map[string]int `json:"provider_stats"` // e.g. "openai-tokens": 500
}

// TotalTokens sums token spend across all providers.
func (s *UsageStats) TotalTokens() int {
	total := 0
	for _, count := range s.ProviderStats {
		total += count
	}
	return total
}

// LastActivity records when the user last acted on the goal. A missing
// record means the user never acted, which the engine treats as inactive
// forever.
type LastActivity struct {
	At time.Time `json:"at"`
}
