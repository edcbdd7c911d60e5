package dto

import "testing"

func TestSaveTransactionItem_OccurredOn(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		want    string
		wantErr bool
	}{
		{name: "rfc3339", date: "2026-03-15T10:30:00Z", want: "2026-03-15"},
		{name: "no zone", date: "2026-03-15T10:30:00", want: "2026-03-15"},
		{name: "date only", date: "2026-03-15", want: "2026-03-15"},
		{name: "unparseable", date: "15/03/2026", wantErr: true},
		{name: "empty", date: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := SaveTransactionItem{Date: tt.date}
			got, err := item.OccurredOn()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Format("2006-01-02"))
			}
		})
	}
}
