package reply

import (
	"fmt"
	"strings"
)

type ruleKind int

const (
	ruleRequired ruleKind = iota
	rulePlatform
)

// fieldRule binds a JSON field name to the check applied to its value.
type fieldRule struct {
	field string
	kind  ruleKind
}

var (
	generationRules = []fieldRule{
		{field: "message", kind: ruleRequired},
		{field: "platform", kind: rulePlatform},
	}
	newReplyRules = []fieldRule{
		{field: "originalMessage", kind: ruleRequired},
		{field: "generatedReply", kind: ruleRequired},
		{field: "platform", kind: rulePlatform},
	}
)

// Validate checks a generation request and returns the parsed platform.
func (r GenerationRequest) Validate() (Platform, error) {
	values := map[string]string{
		"message":  r.Message,
		"platform": r.Platform,
	}
	if err := applyRules(generationRules, values); err != nil {
		return "", err
	}
	p, _ := ParsePlatform(r.Platform)
	return p, nil
}

// Validate checks the archive input and returns the parsed platform.
func (n NewReply) Validate() (Platform, error) {
	values := map[string]string{
		"originalMessage": n.OriginalMessage,
		"generatedReply":  n.GeneratedReply,
		"platform":        n.Platform,
	}
	if err := applyRules(newReplyRules, values); err != nil {
		return "", err
	}
	p, _ := ParsePlatform(n.Platform)
	return p, nil
}

func applyRules(rules []fieldRule, values map[string]string) error {
	for _, rule := range rules {
		value := values[rule.field]
		switch rule.kind {
		case ruleRequired:
			if strings.TrimSpace(value) == "" {
				return &ValidationError{Field: rule.field, Message: rule.field + " is required"}
			}
		case rulePlatform:
			if _, ok := ParsePlatform(value); !ok {
				return &ValidationError{Field: rule.field, Message: platformMessage(rule.field)}
			}
		}
	}
	return nil
}

func platformMessage(field string) string {
	names := make([]string, len(Platforms))
	for i, p := range Platforms {
		names[i] = fmt.Sprintf("%q", string(p))
	}
	return fmt.Sprintf("%s must be one of %s", field, strings.Join(names, ", "))
}
