package catalog

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/yedell/color-challenge/internal/model"
)

func TestDefault_Bijection(t *testing.T) {
	c := Default()

	if c.Len() != 8 {
		t.Fatalf("Expected 8 colors, got %d", c.Len())
	}

	for _, name := range c.Names() {
		rgb, err := c.LookupName(name)
		if err != nil {
			t.Fatalf("LookupName(%q) failed: %v", name, err)
		}
		back, err := c.LookupRGB(rgb)
		if err != nil {
			t.Fatalf("LookupRGB(%v) failed: %v", rgb, err)
		}
		if back != name {
			t.Errorf("Round trip of %q returned %q", name, back)
		}
	}
}

func TestDefault_ClosedUnderComplement(t *testing.T) {
	c := Default()

	for _, name := range c.Names() {
		rgb, _ := c.LookupName(name)
		if _, err := c.LookupRGB(rgb.Complement()); err != nil {
			t.Errorf("Complement of %s is not in the catalog: %v", name, err)
		}
	}
}

func TestLookup_NotFound(t *testing.T) {
	c := Default()

	_, err := c.LookupRGB(model.RGB{R: 1, G: 2, B: 3})
	if err == nil {
		t.Fatal("Expected an error for unknown triple")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("Expected NotFoundError, got %T", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("Expected errors.Is(err, ErrNotFound)")
	}

	if _, err := c.LookupName("mauve"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown name, got %v", err)
	}
}

func TestInsert_CollisionKeepsOnePairing(t *testing.T) {
	tests := []struct {
		name      string
		insert    string
		rgb       model.RGB
		gone      []string
		staleRGBs []model.RGB
	}{
		{
			name:      "existing name gets a new triple",
			insert:    "red",
			rgb:       model.RGB{R: 200, G: 0, B: 0},
			staleRGBs: []model.RGB{{R: 255, G: 0, B: 0}},
		},
		{
			name:   "existing triple gets a new name",
			insert: "crimson",
			rgb:    model.RGB{R: 255, G: 0, B: 0},
			gone:   []string{"red"},
		},
		{
			name:   "name and triple both collide with different entries",
			insert: "red",
			rgb:    model.RGB{R: 0, G: 0, B: 255},
			gone:   []string{"blue"},
			staleRGBs: []model.RGB{
				{R: 255, G: 0, B: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			before := c.Len()
			c.Insert(tt.insert, tt.rgb)

			got, err := c.LookupName(tt.insert)
			if err != nil || got != tt.rgb {
				t.Fatalf("LookupName(%q) = %v, %v", tt.insert, got, err)
			}
			name, err := c.LookupRGB(tt.rgb)
			if err != nil || name != tt.insert {
				t.Fatalf("LookupRGB(%v) = %q, %v", tt.rgb, name, err)
			}
			for _, g := range tt.gone {
				if _, err := c.LookupName(g); err == nil {
					t.Errorf("Stale name %q still present", g)
				}
			}
			for _, rgb := range tt.staleRGBs {
				if _, err := c.LookupRGB(rgb); err == nil {
					t.Errorf("Stale triple %v still present", rgb)
				}
			}
			if c.Len() > before {
				t.Errorf("Catalog grew from %d to %d", before, c.Len())
			}
			if len(c.byName) != len(c.byRGB) {
				t.Errorf("Forward maps out of sync: %d names, %d triples", len(c.byName), len(c.byRGB))
			}
		})
	}
}

func TestDelete(t *testing.T) {
	c := Default()

	if !c.Delete("lime") {
		t.Fatal("Expected Delete(lime) to report true")
	}
	if c.Delete("lime") {
		t.Error("Second Delete(lime) should report false")
	}
	if _, err := c.LookupRGB(model.RGB{R: 0, G: 255, B: 0}); err == nil {
		t.Error("Triple of deleted name still resolvable")
	}
}

func TestRandom_Uniformish(t *testing.T) {
	c := Default()
	rng := rand.New(rand.NewPCG(1, 2))
	counts := make(map[string]int)

	for i := 0; i < 8000; i++ {
		name, rgb := c.Random(rng)
		want, _ := c.LookupName(name)
		if want != rgb {
			t.Fatalf("Random returned mismatched pair %q %v", name, rgb)
		}
		counts[name]++
	}

	for _, name := range c.Names() {
		if counts[name] < 800 || counts[name] > 1200 {
			t.Errorf("Color %s picked %d times out of 8000", name, counts[name])
		}
	}
}
