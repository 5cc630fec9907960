package yaml

import (
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

func TestUnmarshalStrict(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    sample
		wantErr bool
	}{
		{
			name:  "YAML document",
			input: "name: front\nitems:\n  - a\n  - b\n",
			want:  sample{Name: "front", Items: []string{"a", "b"}},
		},
		{
			name:  "JSON document",
			input: `{"name": "front", "items": ["a", "b"]}`,
			want:  sample{Name: "front", Items: []string{"a", "b"}},
		},
		{
			name:    "Invalid document",
			input:   `{"name": "front"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got sample
			err := UnmarshalStrict([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalStrict() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Name != tt.want.Name || len(got.Items) != len(tt.want.Items) {
				t.Fatalf("UnmarshalStrict() = %+v, want %+v", got, tt.want)
			}
			for i := range got.Items {
				if got.Items[i] != tt.want.Items[i] {
					t.Errorf("item %d = %q, want %q", i, got.Items[i], tt.want.Items[i])
				}
			}
		})
	}
}

func TestUnmarshalStrictRejectsUnknownKeys(t *testing.T) {
	var got sample
	if err := UnmarshalStrict([]byte(`{"name": "x", "colour": "red"}`), &got); err == nil {
		t.Fatal("UnmarshalStrict() accepted an unknown key")
	}
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.json")
	if err := os.WriteFile(path, []byte(`{"name": "file", "items": ["z"]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var got sample
	if err := DecodeFile(path, &got); err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	if got.Name != "file" || len(got.Items) != 1 || got.Items[0] != "z" {
		t.Errorf("DecodeFile() = %+v", got)
	}

	if err := DecodeFile(filepath.Join(t.TempDir(), "missing.json"), &got); err == nil {
		t.Error("DecodeFile() on missing file returned nil error")
	}
}
