package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Only syntactic rejections are covered here; positive cases need DNS
// and would make the suite network-dependent.
func TestIsEmailDomainValidSyntax(t *testing.T) {
	assert.False(t, IsEmailDomainValid(""))
	assert.False(t, IsEmailDomainValid("no-at-sign"))
	assert.False(t, IsEmailDomainValid("@example.com"))
	assert.False(t, IsEmailDomainValid("user@"))
	assert.False(t, IsEmailDomainValid("user@other@"))
}
