package commitmsg

import (
	"fmt"

	"github.com/breml/commitlint/internal/conventional"
)

// EvaluateRules evaluates custom rules against a parsed commit message.
// Returns a slice of violations (empty if all rules pass).
func EvaluateRules(rules []Rule, message conventional.Message) []conventional.Violation {
	var violations []conventional.Violation

	for _, rule := range rules {
		text := getTextForScope(rule.Scope, message)

		matched := rule.regex.MatchString(text)

		violated := false
		if rule.Type == RuleTypeDeny && matched {
			violated = true
		}

		if rule.Type == RuleTypeRequire && !matched {
			violated = true
		}

		if violated {
			violations = append(violations, conventional.Violation{
				Rule:   rule.Name,
				Reason: getViolationMessage(rule),
			})
		}
	}

	return violations
}

// shouldSkipAuthor checks if a commit author matches one of the skip patterns.
func shouldSkipAuthor(name string, email string, settings Settings) bool {
	for _, re := range settings.skipAuthors {
		if re.MatchString(name) || re.MatchString(email) {
			return true
		}
	}

	return false
}

// getViolationMessage returns a custom message or generates a default based on rule type.
func getViolationMessage(rule Rule) string {
	if rule.Message != "" {
		return rule.Message
	}

	if rule.Type == RuleTypeDeny {
		return fmt.Sprintf("pattern %q must not match in %s", rule.Pattern, rule.Scope)
	}

	return fmt.Sprintf("pattern %q must match in %s", rule.Pattern, rule.Scope)
}

func getTextForScope(scope Scope, message conventional.Message) string {
	switch scope {
	case ScopeTitle:
		return message.Header

	case ScopeBody:
		return message.Body

	case ScopeFooter:
		return message.Footer

	case ScopeMessage:
		return message.Raw

	default:
		return ""
	}
}
