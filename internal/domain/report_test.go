package domain

import "testing"

func TestRunReport_Summary(t *testing.T) {
	r := NewRunReport("run-1", []string{"911", "912"})
	r.Channel("911").Processed = 2

	want := "total 2 msg converted in <#911>\ntotal 0 msg converted in <#912>"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestRunReport_SummaryPreservesConfigOrder(t *testing.T) {
	r := NewRunReport("run-2", []string{"b", "a"})
	r.Channel("a").Processed = 5

	want := "total 0 msg converted in <#b>\ntotal 5 msg converted in <#a>"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestRunReport_ChannelLookup(t *testing.T) {
	r := NewRunReport("run-3", []string{"x"})
	if r.Channel("x") == nil {
		t.Fatal("Channel(x) should exist")
	}
	if r.Channel("missing") != nil {
		t.Error("Channel(missing) should be nil")
	}
}

func TestRunReport_TotalProcessed(t *testing.T) {
	r := NewRunReport("run-4", []string{"a", "b", "c"})
	r.Channel("a").Processed = 3
	r.Channel("c").Processed = 4

	if got := r.TotalProcessed(); got != 7 {
		t.Errorf("TotalProcessed() = %d, want 7", got)
	}
}
