// Package template implements the placeholder interpolator for outbound
// message templates.
package template

import (
	"fmt"
	"regexp"
)

var placeholderRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Render substitutes {{name}}-style placeholders in content with the
// matching binding values. Placeholders with no binding are left verbatim,
// braces included. Single pass, no escaping, no nesting.
func Render(content string, bindings map[string]interface{}) string {
	return placeholderRe.ReplaceAllStringFunc(content, func(token string) string {
		key := placeholderRe.FindStringSubmatch(token)[1]
		value, ok := bindings[key]
		if !ok {
			return token
		}
		return fmt.Sprintf("%v", value)
	})
}
