package mapping

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderRulesAreUnique(t *testing.T) {
	fields := map[string]bool{}
	paths := map[string]bool{}
	for _, rule := range HeaderRules {
		assert.False(t, fields[rule.Field], "duplicate header field %s", rule.Field)
		assert.False(t, paths[rule.Path], "duplicate header path %s", rule.Path)
		fields[rule.Field] = true
		paths[rule.Path] = true
	}
}

func TestLineRulesAreUnique(t *testing.T) {
	fields := map[string]bool{}
	for _, rule := range LineRules {
		assert.False(t, fields[rule.Field], "duplicate line field %s", rule.Field)
		fields[rule.Field] = true
	}
}

func TestLineRulesAreRelativeToOrderLine(t *testing.T) {
	for _, rule := range LineRules {
		assert.True(t, strings.HasPrefix(rule.Path, "OrderLine/"), "line rule %s: %s", rule.Field, rule.Path)
		assert.False(t, rule.CreateIfMissing, "line targets exist in the base template: %s", rule.Field)
	}
}

func TestOnlyAddressLinesAreCreatable(t *testing.T) {
	for _, rule := range HeaderRules {
		creatable := rule.Field == "CUST-ADDR-ADDRESS2" || rule.Field == "CUST-ADDR-ADDRESS3"
		assert.Equal(t, creatable, rule.CreateIfMissing, "field %s", rule.Field)
	}
}
