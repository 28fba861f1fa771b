package escrowd_test

import (
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	escrowd.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", escrowd.Version())

	escrowd.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", escrowd.Version())
	escrowd.GitCommit = ""
}
