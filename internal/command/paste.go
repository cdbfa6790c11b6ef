package command

import (
	"regexp"
	"strings"
)

// pastedEmail finds the first email-like token in free text.
var pastedEmail = regexp.MustCompile(`[a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\.[a-zA-Z0-9_-]+`)

// namePrefix strips labels such as "Nom :" in front of a name.
var namePrefix = regexp.MustCompile(`(?i)^(Nom|Name|Contact)\s*:\s*`)

// maxPastedNameLen is the length from which a line is considered to be something else than a name.
const maxPastedNameLen = 30

// Signature is what could be recognized in a pasted text.
type Signature struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ParseSignature extracts a name and an email address from text pasted into the creation form,
// typically an email signature. The email is the first email-like token; the name is the first
// non-blank line that contains no '@', without a leading label. Fields that cannot be recognized
// stay empty.
func ParseSignature(text string) Signature {
	var sig Signature
	sig.Email = pastedEmail.FindString(text)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Contains(line, "@") {
			continue
		}
		name := strings.TrimSpace(namePrefix.ReplaceAllString(line, ""))
		if len([]rune(name)) < maxPastedNameLen {
			sig.Name = name
		}
		break
	}
	return sig
}
