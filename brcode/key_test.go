package brcode

import "testing"

func TestClassifyKey(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind KeyKind
		want string
	}{
		{
			name: "email lowercased",
			raw:  "Test@Example.COM",
			kind: KeyEmail,
			want: "test@example.com",
		},
		{
			name: "uuid random key",
			raw:  "A1B2C3D4-E5F6-A1B2-C3D4-E5F6A1B2C3D4",
			kind: KeyRandom,
			want: "a1b2c3d4-e5f6-a1b2-c3d4-e5f6a1b2c3d4",
		},
		{
			name: "bare 32 hex gets hyphens",
			raw:  "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4",
			kind: KeyRandom,
			want: "a1b2c3d4-e5f6-a1b2-c3d4-e5f6a1b2c3d4",
		},
		{
			name: "formatted cpf",
			raw:  "123.456.789-09",
			kind: KeyCPF,
			want: "12345678909",
		},
		{
			name: "formatted cnpj",
			raw:  "12.345.678/0001-95",
			kind: KeyCNPJ,
			want: "12345678000195",
		},
		{
			name: "bare cnpj",
			raw:  "12345678000195",
			kind: KeyCNPJ,
			want: "12345678000195",
		},
		{
			name: "mobile with ddd and 9 prefix",
			raw:  "11987654321",
			kind: KeyPhone,
			want: "+5511987654321",
		},
		{
			name: "landline with ddd",
			raw:  "1133334444",
			kind: KeyPhone,
			want: "+551133334444",
		},
		{
			name: "phone with parentheses",
			raw:  "(11) 98765-4321",
			kind: KeyPhone,
			want: "+5511987654321",
		},
		{
			name: "phone already e164",
			raw:  "+5511987654321",
			kind: KeyPhone,
			want: "+5511987654321",
		},
		{
			name: "phone with bare country code",
			raw:  "5511987654321",
			kind: KeyPhone,
			want: "+5511987654321",
		},
		{
			name: "bare cpf without mobile shape",
			raw:  "12345678909",
			kind: KeyCPF,
			want: "12345678909",
		},
		{
			name: "unrecognized passthrough",
			raw:  "  not a key  ",
			kind: KeyUnrecognized,
			want: "not a key",
		},
		{
			name: "empty",
			raw:  "",
			kind: KeyUnrecognized,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyKey(tt.raw)
			if got.Kind != tt.kind {
				t.Errorf("ClassifyKey(%q).Kind = %v, want %v", tt.raw, got.Kind, tt.kind)
			}
			if got.Value != tt.want {
				t.Errorf("ClassifyKey(%q).Value = %q, want %q", tt.raw, got.Value, tt.want)
			}
		})
	}
}

// An 11-digit number whose third digit is 9 and whose DDD is valid must
// resolve as a phone, never as a CPF; without the 9 it falls through to CPF.
func TestClassifyKeyPhoneCPFAmbiguity(t *testing.T) {
	if got := ClassifyKey("11987654321"); got.Kind != KeyPhone {
		t.Errorf("mobile-shaped number classified as %v, want %v", got.Kind, KeyPhone)
	}
	if got := ClassifyKey("11887654321"); got.Kind != KeyCPF {
		t.Errorf("non-mobile 11 digits classified as %v, want %v", got.Kind, KeyCPF)
	}
}

func TestClassifyKeyIdempotent(t *testing.T) {
	inputs := []string{
		"Test@Example.COM",
		"a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4",
		"123.456.789-09",
		"12.345.678/0001-95",
		"(11) 98765-4321",
		"1133334444",
	}
	for _, raw := range inputs {
		first := ClassifyKey(raw)
		second := ClassifyKey(first.Value)
		if second.Value != first.Value {
			t.Errorf("ClassifyKey not idempotent for %q: %q -> %q", raw, first.Value, second.Value)
		}
		if second.Kind != first.Kind {
			t.Errorf("kind changed on renormalization of %q: %v -> %v", raw, first.Kind, second.Kind)
		}
	}
}

func TestClassifyKeyDeterministic(t *testing.T) {
	const raw = "(11) 98765-4321"
	first := ClassifyKey(raw)
	for i := 0; i < 10; i++ {
		if got := ClassifyKey(raw); got != first {
			t.Fatalf("ClassifyKey(%q) = %+v on call %d, want %+v", raw, got, i+2, first)
		}
	}
}
