// Package script provides the decoy agent's canned reply sequence.
package script

// replies is the fixed decoy script, ordered by conversation turn. The
// lines are written to stall a scammer while sounding like a confused
// victim; once the script runs out the agent repeats the final line.
var replies = []string{
	"What do you mean my account will be blocked?",
	"Which bank are you calling from?",
	"I didn’t get any message earlier.",
	"Is this really required right now?",
	"Can you explain properly, I’m confused.",
	"Why are you asking for this information?",
	"I’m not comfortable sharing this.",
	"I will visit the bank branch instead.",
}

// Len returns the number of scripted utterances.
func Len() int {
	return len(replies)
}

// NextReply returns the utterance for the given turn index. Indices at or
// beyond the script clamp to the last utterance; negative indices clamp to
// the first.
func NextReply(turn int) string {
	if turn < 0 {
		turn = 0
	}
	if turn >= len(replies) {
		turn = len(replies) - 1
	}
	return replies[turn]
}
