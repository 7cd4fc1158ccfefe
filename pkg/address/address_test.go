package address_test

import (
	"testing"

	"voicetask/pkg/address"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		addr    string
		cleaned string
	}{
		{
			name:    "no address",
			text:    "купить молоко",
			addr:    "",
			cleaned: "купить молоко",
		},
		{
			name:    "prefix form with colon",
			text:    "доставить посылку по адресу: Ленина 15, после обеда",
			addr:    "Ленина 15",
			cleaned: "доставить посылку после обеда",
		},
		{
			name:    "prefix form without punctuation",
			text:    "встреча по адресу Тверская 8",
			addr:    "Тверская 8",
			cleaned: "встреча",
		},
		{
			name:    "street marker full word",
			text:    "заехать на улица Пушкина 10 вечером, потом домой",
			addr:    "улица Пушкина 10 вечером",
			cleaned: "заехать на потом домой",
		},
		{
			name:    "street marker abbreviation",
			text:    "забрать заказ ул. Гагарина 3",
			addr:    "ул. Гагарина 3",
			cleaned: "забрать заказ",
		},
		{
			name:    "english street",
			text:    "meet at baker street 221b, then lunch",
			addr:    "street 221b",
			cleaned: "meet at baker then lunch",
		},
		{
			name:    "german allee",
			text:    "paket abholen allee der kosmonauten 5",
			addr:    "allee der kosmonauten 5",
			cleaned: "paket abholen",
		},
		{
			name:    "marker inside a word does not match",
			text:    "посмотреть шоссейный велосипед",
			addr:    "",
			cleaned: "посмотреть шоссейный велосипед",
		},
		{
			name:    "width changing rune before the address keeps offsets aligned",
			text:    "датчик на 300K привезти по адресу Ленина 15",
			addr:    "Ленина 15",
			cleaned: "датчик на 300K привезти",
		},
		{
			name:    "prefix wins over street marker",
			text:    "курьер по адресу проспект Мира 20",
			addr:    "проспект Мира 20",
			cleaned: "курьер",
		},
		{
			name:    "address stops at comma",
			text:    "отвезти документы по адресу Садовая 1, не забыть паспорт",
			addr:    "Садовая 1",
			cleaned: "отвезти документы не забыть паспорт",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := address.Extract(tt.text)
			if got.Address != tt.addr {
				t.Errorf("Extract(%q).Address = %q, want %q", tt.text, got.Address, tt.addr)
			}
			if got.Cleaned != tt.cleaned {
				t.Errorf("Extract(%q).Cleaned = %q, want %q", tt.text, got.Cleaned, tt.cleaned)
			}
		})
	}
}
