package priority_test

import (
	"testing"

	"voicetask/pkg/priority"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    priority.Priority
		cleaned string
	}{
		{
			name:    "no vocabulary",
			text:    "купить молоко",
			want:    priority.Normal,
			cleaned: "купить молоко",
		},
		{
			name:    "urgent single word",
			text:    "срочно позвонить маме",
			want:    priority.Urgent,
			cleaned: "позвонить маме",
		},
		{
			name:    "urgent multiword",
			text:    "сделать отчет как можно скорее",
			want:    priority.Urgent,
			cleaned: "сделать отчет",
		},
		{
			name:    "important",
			text:    "важно оплатить счет",
			want:    priority.Important,
			cleaned: "оплатить счет",
		},
		{
			name:    "urgent wins over important",
			text:    "срочно и важно сдать проект",
			want:    priority.Urgent,
			cleaned: "и важно сдать проект",
		},
		{
			name:    "yo normalization",
			text:    "срочно приготовить ужин с чёрным хлебом",
			want:    priority.Urgent,
			cleaned: "приготовить ужин с черным хлебом",
		},
		{
			name:    "embedded word is not a match",
			text:    "несрочное дело",
			want:    priority.Normal,
			cleaned: "несрочное дело",
		},
		{
			name:    "leading punctuation trimmed after removal",
			text:    "срочно: купить билеты",
			want:    priority.Urgent,
			cleaned: "купить билеты",
		},
		{
			name:    "english urgent",
			text:    "finish the report asap",
			want:    priority.Urgent,
			cleaned: "finish the report",
		},
		{
			name:    "german important",
			text:    "wichtig rechnung bezahlen",
			want:    priority.Important,
			cleaned: "rechnung bezahlen",
		},
		{
			name:    "neobhodimo is important",
			text:    "необходимо продлить страховку",
			want:    priority.Important,
			cleaned: "продлить страховку",
		},
		{
			name:    "until end of day",
			text:    "до конца дня отправить договор",
			want:    priority.Urgent,
			cleaned: "отправить договор",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := priority.Extract(tt.text)
			if got.Priority != tt.want {
				t.Errorf("Extract(%q).Priority = %v, want %v", tt.text, got.Priority, tt.want)
			}
			if got.Cleaned != tt.cleaned {
				t.Errorf("Extract(%q).Cleaned = %q, want %q", tt.text, got.Cleaned, tt.cleaned)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	if got := priority.ParsePriority("urgent"); got != priority.Urgent {
		t.Errorf("ParsePriority(urgent) = %v", got)
	}
	if got := priority.ParsePriority("Important"); got != priority.Important {
		t.Errorf("ParsePriority(Important) = %v", got)
	}
	if got := priority.ParsePriority("whatever"); got != priority.Normal {
		t.Errorf("ParsePriority(whatever) = %v", got)
	}
}

func TestPriorityString(t *testing.T) {
	if priority.Urgent.String() != "urgent" || priority.Normal.String() != "normal" {
		t.Error("unexpected Priority.String output")
	}
	if !(priority.Normal < priority.Important && priority.Important < priority.Urgent) {
		t.Error("priority ordering broken")
	}
}
