package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAppliedVersions(t *testing.T) {
	registered := []Migration{
		{Version: 1, Name: "init_schema"},
		{Version: 2, Name: "add_indexes"},
	}

	tests := []struct {
		name    string
		applied []int
		wantErr string
	}{
		{name: "Nothing Applied", applied: nil},
		{name: "Subset Applied", applied: []int{1}},
		{name: "All Applied", applied: []int{1, 2}},
		{
			name:    "Unknown Version",
			applied: []int{1, 7},
			wantErr: "000007",
		},
		{
			name:    "Multiple Unknown Sorted",
			applied: []int{9, 3},
			wantErr: "000003, 000009",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAppliedVersions(tt.applied, registered)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsMissingLedgerTable(t *testing.T) {
	missing := errors.New(`ERROR: relation "migration_logs" does not exist (SQLSTATE 42P01)`)
	assert.True(t, isMissingLedgerTable(missing),
		"postgres missing-relation error should read as an empty ledger")

	unrelated := errors.New("duplicate key value violates unique constraint")
	assert.False(t, isMissingLedgerTable(unrelated),
		"unrelated errors must not be swallowed")
}
