package sources

import "testing"

func TestScanObject(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		from    int
		want    string
		wantEnd int
		wantOK  bool
	}{
		{
			name:    "brace inside string",
			doc:     `prefix{"a":"}","b":1}suffix`,
			want:    `{"a":"}","b":1}`,
			wantEnd: 21,
			wantOK:  true,
		},
		{
			name:    "escaped quote keeps string open",
			doc:     `x = {"a":"he said \"}\"","b":{"c":2}} tail`,
			want:    `{"a":"he said \"}\"","b":{"c":2}}`,
			wantEnd: 37,
			wantOK:  true,
		},
		{
			name:    "escaped backslash closes string",
			doc:     `{"a":"\\","b":"}"}`,
			want:    `{"a":"\\","b":"}"}`,
			wantEnd: 18,
			wantOK:  true,
		},
		{
			name:    "single quoted string",
			doc:     `v = {'a':'}{'};`,
			want:    `{'a':'}{'}`,
			wantEnd: 14,
			wantOK:  true,
		},
		{
			name:    "first of two objects",
			doc:     `{"a":{"b":{}}} {"c":1}`,
			want:    `{"a":{"b":{}}}`,
			wantEnd: 14,
			wantOK:  true,
		},
		{
			name:    "start after first object",
			doc:     `{"a":{"b":{}}} {"c":1}`,
			from:    14,
			want:    `{"c":1}`,
			wantEnd: 22,
			wantOK:  true,
		},
		{
			name:    "negative offset clamps to zero",
			doc:     `{}`,
			from:    -5,
			want:    `{}`,
			wantEnd: 2,
			wantOK:  true,
		},
		{name: "no brace", doc: `var x = [1,2];`, wantEnd: -1},
		{name: "unbalanced", doc: `{"a":{"b":1}`, wantEnd: -1},
		{name: "unterminated string", doc: `{"a":"}`, wantEnd: -1},
		{name: "offset past end", doc: `{}`, from: 2, wantEnd: -1},
		{name: "empty", doc: ``, wantEnd: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, end, ok := ScanObject(tt.doc, tt.from)
			if ok != tt.wantOK {
				t.Fatalf("ScanObject() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ScanObject() = %q, want %q", got, tt.want)
			}
			if end != tt.wantEnd {
				t.Errorf("ScanObject() end = %d, want %d", end, tt.wantEnd)
			}
			if ok && tt.doc[end-len(got):end] != got {
				t.Errorf("end %d does not close the returned object", end)
			}
		})
	}
}
