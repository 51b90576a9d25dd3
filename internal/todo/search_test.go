package todo

import "testing"

func TestSearch(t *testing.T) {
	tasks := []Task{
		{ID: 1, Name: "Buy milk", Category: "Errands", Tags: []string{"shop"}},
		{ID: 2, Name: "Write report", Category: "Work", Tags: []string{"urgent", "q3"}},
		{ID: 3, Name: "Call mom", Category: "Family"},
		{ID: 4, Name: "Fix bike"},
	}

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{name: "name match", query: "milk", want: []int64{1}},
		{name: "category match", query: "Work", want: []int64{2}},
		{name: "tag match", query: "urg", want: []int64{2}},
		{name: "case sensitive", query: "buy", want: nil},
		{name: "several matches keep order", query: "i", want: []int64{1, 2, 3, 4}},
		{name: "empty query matches all", query: "", want: []int64{1, 2, 3, 4}},
		{name: "no match", query: "zzz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tasks, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d tasks, want %d", tt.query, len(got), len(tt.want))
			}
			for i, task := range got {
				if task.ID != tt.want[i] {
					t.Errorf("Search(%q)[%d].ID = %d, want %d", tt.query, i, task.ID, tt.want[i])
				}
			}
		})
	}
}
