package logger

import (
	"strings"

	verbolog "github.com/verbo-labs/verbo/pkg/verbo/v1/log"
)

// headerRuleWidth is the width of the rule lines framing a header block.
const headerRuleWidth = 72

// Header inserts an identifier message into the log as a framed block:
// a top rule, the message, and a bottom rule carrying the tag. It logs at
// INFO verbosity through the given logger, so it obeys the same thresholds
// and destinations as every other message.
func Header(l verbolog.Logger, msg string) {
	HeaderWith(l, msg, "_", "_", "verbo")
}

// HeaderWith is Header with explicit rule characters and closing tag. An
// empty bottomTag omits the tag from the closing rule.
func HeaderWith(l verbolog.Logger, msg, topChar, bottomChar, bottomTag string) {
	if topChar == "" {
		topChar = "_"
	}
	if bottomChar == "" {
		bottomChar = "_"
	}
	bottom := strings.Repeat(bottomChar, headerRuleWidth)
	if bottomTag != "" {
		// Close the rule with the tag, keeping the overall width fixed.
		tag := " " + bottomTag
		if len(tag) < headerRuleWidth {
			bottom = strings.Repeat(bottomChar, headerRuleWidth-len(tag)) + tag
		} else {
			bottom = bottomTag
		}
	}
	l.Infof("%s", strings.Repeat(topChar, headerRuleWidth))
	l.Infof("%s", msg)
	l.Infof("%s", bottom)
}
