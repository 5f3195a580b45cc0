package modelstorage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage(t *testing.T) {
	entries := []AuditEntry{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}}
	ids := func(es []AuditEntry) []string {
		res := make([]string, 0, len(es))
		for _, e := range es {
			res = append(res, e.ID)
		}
		return res
	}
	assert.Equal(t, []string{"5", "4"}, ids(Page(entries, 2, 0)))
	assert.Equal(t, []string{"3", "2"}, ids(Page(entries, 2, 2)))
	assert.Equal(t, []string{"1"}, ids(Page(entries, 2, 4)))
	assert.Empty(t, Page(entries, 2, 5))
	assert.Empty(t, Page(entries, 0, 0))
	assert.Empty(t, Page(nil, 10, 0))
}
