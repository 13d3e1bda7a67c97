package monitoring

import (
	"testing"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	// Check if our metric is present
	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}

	// Check value
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	// Check uptime presence
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_RecordTurnDecision(t *testing.T) {
	m := NewMonitor()

	m.RecordTurnDecision("ADD_TO_ORDER", "proceed")
	m.RecordTurnDecision("ADD_TO_ORDER", "clarify")

	metrics := m.GetMetrics()

	value, exists := metrics["turns_total"]
	if !exists {
		t.Fatalf("Expected 'turns_total' to be present in metrics, but it was not")
	}
	if value != int64(2) {
		t.Errorf("Expected 'turns_total' to be 2, but got %v", value)
	}

	value, exists = metrics["intent_ADD_TO_ORDER"]
	if !exists {
		t.Fatalf("Expected 'intent_ADD_TO_ORDER' to be present in metrics, but it was not")
	}
	if value != int64(2) {
		t.Errorf("Expected 'intent_ADD_TO_ORDER' to be 2, but got %v", value)
	}

	value, exists = metrics["decision_proceed"]
	if !exists {
		t.Fatalf("Expected 'decision_proceed' to be present in metrics, but it was not")
	}
	if value != int64(1) {
		t.Errorf("Expected 'decision_proceed' to be 1, but got %v", value)
	}

	// Timestamp of the last turn is recorded
	_, exists = metrics["last_turn_at"]
	if !exists {
		t.Errorf("Expected 'last_turn_at' to be present in metrics, but it was not")
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()

	// Our test metric should be gone, but uptime should still be there
	_, exists := metrics["test_metric"]
	if exists {
		t.Errorf("Expected 'test_metric' to be removed after Reset(), but it was present")
	}

	// Uptime should still be present (it's added on GetMetrics call)
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}
