package plaintext_test

import (
	"testing"

	"vcpass/internal/params"
	"vcpass/internal/plaintext"
)

func TestEncode(t *testing.T) {
	p := params.Default()
	sym := []int{0, 4, 4, 4, 1, 5, 2, 3, 4, 4, 4, 4, 5, 5, 5, 3}
	got, err := plaintext.Encode(p, sym)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if want := "0___1_23_______3"; got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestEncodeRejects(t *testing.T) {
	p := params.Default()
	if _, err := plaintext.Encode(p, []int{0, 1}); err == nil {
		t.Error("Encode(short) = nil error, want error")
	}
	sym := plaintext.Uniform(p, 0)
	sym[3] = p.VocSize
	if _, err := plaintext.Encode(p, sym); err == nil {
		t.Error("Encode(out of range) = nil error, want error")
	}
}

func TestDecode(t *testing.T) {
	p := params.Default()
	got, err := plaintext.Decode(p, "0___1_23_______3")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	want := []int{0, -1, -1, -1, 1, -1, 2, 3, -1, -1, -1, -1, -1, -1, -1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Decode[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	for _, bad := range []string{"0___", "4_______________", "x_______________"} {
		if _, err := plaintext.Decode(p, bad); err == nil {
			t.Errorf("Decode(%q) = nil error, want error", bad)
		}
	}
}

func TestCheck(t *testing.T) {
	p := params.Default()
	secret := []int{0, 4, 4, 4, 1, 5, 2, 3, 4, 4, 4, 4, 5, 5, 5, 3}
	resp, err := plaintext.Decode(p, "0___1_23_______3")
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !plaintext.Check(p, secret, resp) {
		t.Error("Check(correct) = false")
	}
	resp[4] = 2
	if plaintext.Check(p, secret, resp) {
		t.Error("Check(wrong direction) = true")
	}
	if plaintext.Check(p, secret, plaintext.NewResponse(p)) {
		t.Error("Check(empty response) = true")
	}
	if plaintext.Check(p, secret, resp[:3]) {
		t.Error("Check(short response) = true")
	}
}

func TestCheck_OutOfRange(t *testing.T) {
	p := params.Default()
	if plaintext.Check(p, plaintext.Uniform(p, 4), plaintext.Uniform(p, 255)) {
		t.Error("Check(blank secret, 255 everywhere) = true")
	}
	secret := plaintext.Uniform(p, 4)
	secret[0] = int(params.Up)
	resp := plaintext.NewResponse(p)
	resp[0] = 256
	if plaintext.Check(p, secret, resp) {
		t.Error("Check(up answered with 256) = true")
	}
	resp[0] = -2
	if plaintext.Check(p, secret, resp) {
		t.Error("Check(up answered with -2) = true")
	}
	bad := plaintext.Uniform(p, 4)
	bad[1] = 4 + 256
	if plaintext.Check(p, bad, plaintext.NewResponse(p)) {
		t.Error("Check(secret outside vocabulary) = true")
	}
}

func TestNewResponse(t *testing.T) {
	p := params.Default()
	r := plaintext.NewResponse(p)
	if len(r) != p.Cells() {
		t.Fatalf("len(NewResponse) = %d, want %d", len(r), p.Cells())
	}
	for i, v := range r {
		if v != -1 {
			t.Errorf("NewResponse[%d] = %d, want -1", i, v)
		}
	}
}

func TestRandom(t *testing.T) {
	p := params.Default()
	for range 50 {
		sym, err := plaintext.Random(p, 4)
		if err != nil {
			t.Fatalf("Random() error: %v", err)
		}
		n := 0
		for _, s := range sym {
			if s < 0 || s >= p.VocSize {
				t.Fatalf("Random symbol %d out of range", s)
			}
			if p.IsDistinguished(s) {
				n++
			}
		}
		if n < 4 {
			t.Fatalf("Random produced %d directions, want at least 4", n)
		}
	}
	if _, err := plaintext.Random(p, p.Cells()+1); err == nil {
		t.Error("Random(too many) = nil error, want error")
	}
}

func TestEncodeVerified(t *testing.T) {
	p := params.Default()
	for range 20 {
		sym, err := plaintext.Random(p, 0)
		if err != nil {
			t.Fatalf("Random() error: %v", err)
		}
		answer, err := plaintext.EncodeVerified(p, sym)
		if err != nil {
			t.Fatalf("EncodeVerified(%v) error: %v", sym, err)
		}
		resp, err := plaintext.Decode(p, answer)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", answer, err)
		}
		if !plaintext.Check(p, sym, resp) {
			t.Errorf("Check(%v, Decode(%q)) = false", sym, answer)
		}
	}
}

func TestParseArrows(t *testing.T) {
	p := params.Default()
	want := []int{0, -1, -1, -1, 1, -1, 2, 3, -1, -1, -1, -1, -1, -1, -1, 3}
	inputs := []string{
		"↑___ ↓_←→ ____ ___→",
		"u...d.lr.......r",
		"^___v_<>_______>",
		"0___1_23_______3",
	}
	for _, in := range inputs {
		got, err := plaintext.ParseArrows(p, in)
		if err != nil {
			t.Fatalf("ParseArrows(%q) error: %v", in, err)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("ParseArrows(%q)[%d] = %d, want %d", in, i, got[i], want[i])
			}
		}
	}
	if got := plaintext.RenderArrows(want); got != "↑___↓_←→_______→" {
		t.Errorf("RenderArrows = %q", got)
	}
	if _, err := plaintext.ParseArrows(p, "↑↑"); err == nil {
		t.Error("ParseArrows(short) = nil error, want error")
	}
	if _, err := plaintext.ParseArrows(p, "x_______________"); err == nil {
		t.Error("ParseArrows(bad glyph) = nil error, want error")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		dx, dy float64
		want   params.Direction
	}{
		{10, 2, params.Right},
		{-10, 2, params.Left},
		{1, 10, params.Down},
		{1, -10, params.Up},
		{5, 5, params.Down},
		{0, 0, params.Up},
	}
	for _, c := range cases {
		if got := plaintext.Classify(c.dx, c.dy); got != c.want {
			t.Errorf("Classify(%v, %v) = %v, want %v", c.dx, c.dy, got, c.want)
		}
	}
}
