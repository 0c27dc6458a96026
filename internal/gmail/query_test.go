package gmail

import (
	"testing"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name    string
		filters QueryFilters
		want    string
	}{
		{
			name:    "empty filters",
			filters: QueryFilters{},
			want:    "",
		},
		{
			name:    "raw query takes precedence",
			filters: QueryFilters{Raw: "in:inbox newer_than:7d", From: "alice@example.com", Unread: true},
			want:    "in:inbox newer_than:7d",
		},
		{
			name:    "from filter",
			filters: QueryFilters{From: "alice@example.com"},
			want:    "from:alice@example.com",
		},
		{
			name:    "from with display name is quoted",
			filters: QueryFilters{From: "Alice Smith"},
			want:    `from:"Alice Smith"`,
		},
		{
			name: "combined filters are space-joined",
			filters: QueryFilters{
				From:    "alice@example.com",
				Subject: "quarterly report",
				Unread:  true,
			},
			want: `from:alice@example.com subject:"quarterly report" is:unread`,
		},
		{
			name:    "starred and attachment flags",
			filters: QueryFilters{Starred: true, Attachment: true},
			want:    "is:starred has:attachment",
		},
		{
			name:    "date bounds",
			filters: QueryFilters{After: "2024/01/01", Before: "2024/06/30"},
			want:    "after:2024/01/01 before:2024/06/30",
		},
		{
			name:    "free words come last",
			filters: QueryFilters{Label: "work", HasWords: "invoice overdue"},
			want:    "label:work invoice overdue",
		},
		{
			name:    "to filter",
			filters: QueryFilters{To: "bob@example.com"},
			want:    "to:bob@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildQuery(tt.filters)
			if got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageQueryNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want int64
	}{
		{name: "zero uses default", in: 0, want: DefaultMaxResults},
		{name: "negative uses default", in: -5, want: DefaultMaxResults},
		{name: "small value passes through", in: 25, want: 25},
		{name: "ceiling passes through", in: MaxResultsCeiling, want: MaxResultsCeiling},
		{name: "above ceiling is clamped", in: 100000, want: MaxResultsCeiling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MessageQuery{MaxResults: tt.in}.Normalize().MaxResults
			if got != tt.want {
				t.Errorf("Normalize().MaxResults = %d, want %d", got, tt.want)
			}
		})
	}
}
