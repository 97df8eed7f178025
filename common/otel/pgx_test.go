package otel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatementVerb(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{name: "insert", sql: "INSERT INTO orders (order_id) VALUES ($1)", want: "insert"},
		{name: "leading whitespace", sql: "\n\t  SELECT 1", want: "select"},
		{name: "empty", sql: "   ", want: "query"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statementVerb(tc.sql))
		})
	}
}
