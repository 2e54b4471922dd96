package llm

import "encoding/json"

const (
	// DefaultTokenBudget is the rough context budget before old turns are dropped.
	DefaultTokenBudget = 120000

	// keepRecent is how many non-system messages survive a truncation.
	keepRecent = 10
)

// TruncateMessages drops older turns when the estimated token count exceeds
// maxTokens. System messages are always kept; otherwise only the most recent
// turns survive. Tokens are estimated at four characters each.
func TruncateMessages(messages []Message, maxTokens int) []Message {
	if len(messages) == 0 {
		return messages
	}
	if maxTokens <= 0 {
		maxTokens = DefaultTokenBudget
	}

	if estimateTokens(messages) <= maxTokens {
		return messages
	}

	var system, rest []Message
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m)
		} else {
			rest = append(rest, m)
		}
	}

	keep := keepRecent
	if keep > len(rest) {
		keep = len(rest)
	}
	return append(system, rest[len(rest)-keep:]...)
}

func estimateTokens(messages []Message) int {
	chars := 0
	for _, m := range messages {
		b, err := json.Marshal(m)
		if err != nil {
			chars += len(m.Content)
			continue
		}
		chars += len(b)
	}
	return chars / 4
}
