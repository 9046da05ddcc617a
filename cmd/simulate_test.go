package cmd

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mselser95/betting-arcade/internal/marketmaker"
)

func TestTradeLabel(t *testing.T) {
	tests := []struct {
		name     string
		reject   marketmaker.Reject
		isBuy    bool
		size     float64
		expected string
	}{
		{
			name:     "accepted-buy",
			reject:   marketmaker.RejectNone,
			isBuy:    true,
			size:     1.5,
			expected: "buy 1.5",
		},
		{
			name:     "accepted-sell",
			reject:   marketmaker.RejectNone,
			isBuy:    false,
			size:     2.0,
			expected: "sell 2.0",
		},
		{
			name:     "rejected-amount",
			reject:   marketmaker.RejectAmount,
			isBuy:    true,
			size:     0,
			expected: "invalid_amount",
		},
		{
			name:     "rejected-position-limit",
			reject:   marketmaker.RejectPositionLimit,
			isBuy:    false,
			size:     500,
			expected: "position_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tradeLabel(tt.reject, tt.isBuy, tt.size), "Label mismatch")
		})
	}
}

func TestRunSimulateSeeded(t *testing.T) {
	// Set flags
	simRounds = 3
	simSeed = 42
	simBet = 10.0
	simBalance = 1000.0
	simPolicy = "reference_priced"
	simTrade = 1.0

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err, "Failed to create pipe")
	os.Stdout = w

	runErr := runSimulate(simulateCmd, nil)

	os.Stdout = old
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err, "Failed to read captured output")

	require.NoError(t, runErr, "Simulate should run cleanly")

	output := string(out)
	assert.Contains(t, output, "ROUND", "Should print the table header")
	assert.Contains(t, output, "buy 1.0", "Should report the round 1 buy")
	assert.Contains(t, output, "sell 1.0", "Should report the round 2 sell")
	assert.Contains(t, output, "3 rounds", "Should print the session summary")

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.GreaterOrEqual(t, len(lines), 5, "Header, three rounds and a summary")

	// Reset flags
	simRounds = 10
	simSeed = 0
	simTrade = 1.0
}

func TestRunSimulateRejectsBadPolicy(t *testing.T) {
	simPolicy = "martingale"

	err := runSimulate(simulateCmd, nil)
	require.Error(t, err, "Unknown policy should return an error")
	assert.Contains(t, err.Error(), "parse market policy", "Error should name the failing step")

	// Reset flag
	simPolicy = "reference_priced"
}
