package snowflake_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"oompa/backend/internal/snowflake"
)

func TestNextID_Increasing(t *testing.T) {
	require.NoError(t, snowflake.Init(1))

	prev := snowflake.NextID()
	for range 100 {
		next := snowflake.NextID()
		require.Greater(t, next, prev)
		prev = next
	}
}

func TestInit_RejectsOutOfRangeNode(t *testing.T) {
	require.Error(t, snowflake.Init(4096))
}
