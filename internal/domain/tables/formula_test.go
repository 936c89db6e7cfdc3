package tables_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/dcc-bot-discord/internal/dice/mock"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalFormula(t *testing.T) {
	vars := map[string]int{"level": 3}

	tests := []struct {
		name    string
		formula string
		rolls   []int
		want    int
		wantErr bool
	}{
		{name: "flat", formula: "12", want: 12},
		{name: "level reference", formula: "10+level", want: 13},
		{name: "dice and flat", formula: "2d6+1", rolls: []int{4, 5}, want: 10},
		{name: "subtracting level", formula: "1d8-level", rolls: []int{6}, want: 3},
		{name: "leading sign", formula: "-2+level", want: 1},
		{name: "spaces ignored", formula: " 10 + level ", want: 13},
		{name: "unknown name", formula: "10+rank", wantErr: true},
		{name: "trailing operator", formula: "10+", wantErr: true},
		{name: "doubled operator", formula: "10++2", wantErr: true},
		{name: "empty", formula: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.rolls)

			got, err := tables.EvalFormula(tt.formula, vars, roller)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Total)
			assert.Equal(t, 0, roller.Remaining())
		})
	}
}
