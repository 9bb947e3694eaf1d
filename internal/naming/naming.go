// Package naming derives physical resource names from the construct tree.
//
// Physical names follow one convention everywhere: the enclosing stack name,
// a hyphen, then the construct id, sanitized to satisfy RDS identifier rules
// (lowercase letters, digits and hyphens, 63 characters max, must start with
// a letter, no trailing hyphen).
package naming

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// maxIdentifierLen is the RDS limit for DB instance identifiers.
const maxIdentifierLen = 63

// PrefixedID returns the stack-scoped physical identifier for a construct id.
// It fails when sanitization leaves nothing usable, rather than handing the
// provisioning engine an empty name.
func PrefixedID(scope constructs.Construct, id string) (*string, error) {
	stack := awscdk.Stack_Of(scope)
	raw := *stack.StackName() + "-" + id
	name := Sanitize(raw)
	if name == "" {
		return nil, fmt.Errorf("no usable identifier characters in %q", raw)
	}
	return jsii.String(name), nil
}

// Sanitize converts a raw name to a valid RDS identifier.
func Sanitize(name string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			// runs of punctuation collapse to a single hyphen
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	s := b.String()

	// identifiers must start with a letter
	for len(s) > 0 && (s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		s = s[1:]
	}
	if len(s) > maxIdentifierLen {
		s = s[:maxIdentifierLen]
	}
	return strings.TrimSuffix(s, "-")
}
