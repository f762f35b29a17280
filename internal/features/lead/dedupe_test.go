package lead

import "testing"

func TestDuplicateScore(t *testing.T) {
	tests := []struct {
		name string
		a    Lead
		b    Lead
		want int
	}{
		{
			name: "Email match is case-insensitive",
			a:    Lead{Email: "x@y.com"},
			b:    Lead{Email: "X@Y.com"},
			want: 50,
		},
		{
			name: "Phone match",
			a:    Lead{Email: "a@a.com", Phone: "(555) 111-2222"},
			b:    Lead{Email: "b@b.com", Phone: "(555) 111-2222"},
			want: 40,
		},
		{
			name: "Empty phones do not match",
			a:    Lead{Email: "a@a.com"},
			b:    Lead{Email: "b@b.com"},
			want: 0,
		},
		{
			name: "Company substring either direction",
			a:    Lead{Email: "a@a.com", Company: "Acme"},
			b:    Lead{Email: "b@b.com", Company: "acme corp"},
			want: 20,
		},
		{
			name: "Empty companies do not match",
			a:    Lead{Email: "a@a.com", Company: ""},
			b:    Lead{Email: "b@b.com", Company: ""},
			want: 0,
		},
		{
			name: "Scores are additive",
			a:    Lead{Email: "x@y.com", Phone: "(555) 111-2222", Company: "Globex"},
			b:    Lead{Email: "x@y.com", Phone: "(555) 111-2222", Company: "Globex Inc"},
			want: 110,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DuplicateScore(&tt.a, &tt.b); got != tt.want {
				t.Errorf("DuplicateScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDuplicateThreshold(t *testing.T) {
	a := Lead{Email: "x@y.com"}
	b := Lead{Email: "X@Y.com"}
	if DuplicateScore(&a, &b) < DuplicateThreshold {
		t.Errorf("identical emails must reach the duplicate threshold")
	}
}
