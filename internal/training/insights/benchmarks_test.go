package insights_test

import (
	"testing"

	"github.com/athletiq/athlete-tracker/internal/training/insights"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPerformance(t *testing.T) {
	testCases := []struct {
		name          string
		value         float64
		metric        string
		lowerIsBetter bool
		expectedLevel string
	}{
		{name: "RunTimeElite", value: 420, metric: insights.MetricRunTime, lowerIsBetter: true, expectedLevel: "Elite"},
		{name: "RunTimeGood", value: 450, metric: insights.MetricRunTime, lowerIsBetter: true, expectedLevel: "Good"},
		{name: "RunTimeAverage", value: 480, metric: insights.MetricRunTime, lowerIsBetter: true, expectedLevel: "Average"},
		{name: "RunTimeNeedsWork", value: 481, metric: insights.MetricRunTime, lowerIsBetter: true, expectedLevel: "Needs Work"},

		{name: "BroadJumpElite", value: 260, metric: insights.MetricBroadJump, expectedLevel: "Elite"},
		{name: "BroadJumpGood", value: 240, metric: insights.MetricBroadJump, expectedLevel: "Good"},
		{name: "BroadJumpAverage", value: 220, metric: insights.MetricBroadJump, expectedLevel: "Average"},
		{name: "BroadJumpNeedsWork", value: 219, metric: insights.MetricBroadJump, expectedLevel: "Needs Work"},

		{name: "SprintElite", value: 32, metric: insights.MetricSprint, expectedLevel: "Elite"},
		{name: "SprintGood", value: 28, metric: insights.MetricSprint, expectedLevel: "Good"},
		{name: "SprintAverage", value: 24, metric: insights.MetricSprint, expectedLevel: "Average"},
		{name: "SprintNeedsWork", value: 23.9, metric: insights.MetricSprint, expectedLevel: "Needs Work"},

		{name: "BalanceElite", value: 95, metric: insights.MetricJumpBalance, expectedLevel: "Elite"},
		{name: "BalanceGood", value: 90, metric: insights.MetricJumpBalance, expectedLevel: "Good"},
		{name: "BalanceAverage", value: 85, metric: insights.MetricJumpBalance, expectedLevel: "Average"},
		{name: "BalanceNeedsWork", value: 84, metric: insights.MetricJumpBalance, expectedLevel: "Needs Work"},

		{name: "FatigueElite", value: -5, metric: insights.MetricFatigue, expectedLevel: "Elite"},
		{name: "FatigueGood", value: -10, metric: insights.MetricFatigue, expectedLevel: "Good"},
		{name: "FatigueAverage", value: -15, metric: insights.MetricFatigue, expectedLevel: "Average"},
		{name: "FatigueNeedsWork", value: -15.1, metric: insights.MetricFatigue, expectedLevel: "Needs Work"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			classification := insights.ClassifyPerformance(tc.value, tc.metric, tc.lowerIsBetter)
			assert.Equal(t, tc.expectedLevel, classification.Level)
			assert.NotEmpty(t, classification.Color)
		})
	}
}

func TestClassifyPerformance_UnknownMetric(t *testing.T) {
	classification := insights.ClassifyPerformance(100, "verticalHop", false)
	assert.Equal(t, "Unknown", classification.Level)
	assert.Equal(t, "#6b7280", classification.Color)
}

func TestClassifyPerformance_Colors(t *testing.T) {
	assert.Equal(t, "#10b981", insights.ClassifyPerformance(400, insights.MetricRunTime, true).Color)
	assert.Equal(t, "#3b82f6", insights.ClassifyPerformance(440, insights.MetricRunTime, true).Color)
	assert.Equal(t, "#f59e0b", insights.ClassifyPerformance(470, insights.MetricRunTime, true).Color)
	assert.Equal(t, "#ef4444", insights.ClassifyPerformance(500, insights.MetricRunTime, true).Color)
}
