package design

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/wellplate"
)

func newTestPlate(t *testing.T, rows, cols int) *wellplate.Plate {
	t.Helper()
	p, err := wellplate.New("test", rows, cols, palette.ClearColor)
	require.NoError(t, err)
	return p
}

func assertUntouched(t *testing.T, p *wellplate.Plate) {
	t.Helper()
	assert.Equal(t, 0, wellplate.Summarize(p).AssignedWells, "failed design must not touch the plate")
}

func TestSerialDilutionConcentrations(t *testing.T) {
	d := SerialDilution{Start: 1000, Factor: 2, Steps: 4}
	assert.Equal(t, []float64{1000, 500, 250, 125}, d.Concentrations())
}

func TestSerialDilutionApply(t *testing.T) {
	p := newTestPlate(t, 8, 12)
	d := SerialDilution{
		Compound: "Inhibitor X",
		Start:    1000, Factor: 2, Steps: 4,
		Unit:      "nM",
		BaseColor: "#2563EB",
	}
	wells := []string{"A1", "A2", "A3", "A4", "A5"}
	require.NoError(t, d.Apply(p, wells))

	wantConc := map[string]string{
		"A1": "1000.00 nM",
		"A2": "500.00 nM",
		"A3": "250.00 nM",
		"A4": "125.00 nM",
	}
	for id, conc := range wantConc {
		w := p.Well(id)
		require.NotNil(t, w.Treatment, "well %s", id)
		assert.Equal(t, "Serial Dilution", *w.Treatment)
		assert.Equal(t, "Inhibitor X", *w.Compound)
		assert.Equal(t, conc, *w.Concentration, "well %s", id)
		assert.Equal(t, 1, *w.Replicate)
	}
	// Only the first Steps wells are used.
	assert.False(t, p.Well("A5").Assigned())
}

func TestSerialDilutionErrors(t *testing.T) {
	p := newTestPlate(t, 8, 12)

	err := SerialDilution{Compound: "X", Start: 100, Factor: 2, Steps: 4}.Apply(p, []string{"A1", "A2"})
	require.ErrorIs(t, err, ErrInsufficientWells)
	assert.Contains(t, err.Error(), "need 4")
	assertUntouched(t, p)

	err = SerialDilution{Compound: "X", Start: 100, Factor: 1, Steps: 2}.Apply(p, []string{"A1", "A2"})
	require.ErrorIs(t, err, ErrInvalidDesign)
	assertUntouched(t, p)

	err = SerialDilution{Start: 100, Factor: 2, Steps: 2}.Apply(p, []string{"A1", "A2"})
	require.ErrorIs(t, err, ErrInvalidDesign)
	assertUntouched(t, p)
}

func TestDesignsRejectUnknownWells(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	applications := map[string]func(p *wellplate.Plate, wells []string) error{
		"dilution": func(p *wellplate.Plate, wells []string) error {
			return SerialDilution{Compound: "X", Start: 100, Factor: 2, Steps: 4}.Apply(p, wells)
		},
		"dose response": func(p *wellplate.Plate, wells []string) error {
			d := DoseResponse{Compound: "X", MinDose: 1, MaxDose: 100, Doses: 2, Replicates: 2}
			return d.Apply(p, wells)
		},
		"time course": func(p *wellplate.Plate, wells []string) error {
			d := TimeCourse{Treatment: "X", Times: []string{"0h", "4h"}, ReplicatesPerTime: 2}
			return d.Apply(p, wells)
		},
		"combinatorial": func(p *wellplate.Plate, wells []string) error {
			d := Combinatorial{Factors: []Factor{
				{Name: "A", Levels: []string{"x", "y"}},
				{Name: "B", Levels: []string{"p", "q"}},
			}}
			return d.Apply(p, wells, rng)
		},
		"mixture": func(p *wellplate.Plate, wells []string) error {
			return ApplyMixture(p, wells, []wellplate.MixtureComponent{
				{Compound: "Drug A", Concentration: 10, Unit: "µM"},
			})
		},
	}

	for name, apply := range applications {
		t.Run(name, func(t *testing.T) {
			p := newTestPlate(t, 8, 12)

			// Enough wells, but none of them exist on the plate.
			err := apply(p, []string{"Z90", "Z91", "Z92", "Z93"})
			require.ErrorIs(t, err, ErrInvalidDesign)
			assert.Contains(t, err.Error(), "Z90")
			assertUntouched(t, p)

			// A single bad id anywhere in the selection fails the
			// whole design before the first write.
			err = apply(p, []string{"A1", "A2", "A3", "Z90"})
			require.ErrorIs(t, err, ErrInvalidDesign)
			assertUntouched(t, p)
		})
	}
}

func TestDoseResponseLinearLabels(t *testing.T) {
	d := DoseResponse{Scale: ScaleLinear, MinDose: 0, MaxDose: 100, Doses: 5, Unit: "nM"}
	labels, err := d.Labels()
	require.NoError(t, err)
	assert.Equal(t, []string{"0 nM", "25 nM", "50 nM", "75 nM", "100 nM"}, labels)
}

func TestDoseResponseIncludeZeroPrepends(t *testing.T) {
	d := DoseResponse{Scale: ScaleLinear, MinDose: 0, MaxDose: 100, Doses: 5, Unit: "nM", IncludeZero: true}
	labels, err := d.Labels()
	require.NoError(t, err)
	assert.Equal(t, []string{"0 nM", "0 nM", "25 nM", "50 nM", "75 nM", "100 nM"}, labels)
}

func TestDoseResponseLogLabels(t *testing.T) {
	d := DoseResponse{Scale: ScaleLogarithmic, MinDose: 0.001, MaxDose: 100, Doses: 6, Unit: "µM"}
	labels, err := d.Labels()
	require.NoError(t, err)
	assert.Equal(t, []string{"0.001 µM", "0.01 µM", "0.1 µM", "1 µM", "10 µM", "100 µM"}, labels)
}

func TestDoseResponseLogRejectsNonPositiveMin(t *testing.T) {
	d := DoseResponse{Scale: ScaleLogarithmic, MinDose: 0, MaxDose: 100, Doses: 4}
	_, err := d.Labels()
	assert.ErrorIs(t, err, ErrInvalidDesign)
}

func TestDoseResponseApply(t *testing.T) {
	p := newTestPlate(t, 8, 12)
	d := DoseResponse{
		Compound: "Inhibitor X",
		Scale:    ScaleLinear,
		MinDose:  0, MaxDose: 100,
		Doses:      3,
		Replicates: 2,
		Unit:       "nM",
	}
	wells := []string{"A1", "A2", "A3", "A4", "A5", "A6"}
	require.NoError(t, d.Apply(p, wells))

	// Dose-major: both replicates of a dose before the next dose.
	w := p.Well("A1")
	assert.Equal(t, "Inhibitor X", *w.Treatment)
	assert.Equal(t, "Inhibitor X 0 nM", *w.Compound)
	assert.Equal(t, "0 nM", *w.Concentration)
	assert.Equal(t, 1, *w.Replicate)

	assert.Equal(t, 2, *p.Well("A2").Replicate)
	assert.Equal(t, "50 nM", *p.Well("A3").Concentration)
	assert.Equal(t, "100 nM", *p.Well("A5").Concentration)

	// One color per dose.
	assert.Equal(t, p.Well("A1").Color, p.Well("A2").Color)
	assert.NotEqual(t, p.Well("A2").Color, p.Well("A3").Color)
}

func TestDoseResponseInsufficientWells(t *testing.T) {
	p := newTestPlate(t, 8, 12)
	d := DoseResponse{
		Compound: "X",
		Scale:    ScaleLinear,
		MaxDose:  100,
		Doses:    4, Replicates: 3,
	}
	err := d.Apply(p, []string{"A1", "A2", "A3"})
	require.ErrorIs(t, err, ErrInsufficientWells)
	assert.Contains(t, err.Error(), "need 12")
	assertUntouched(t, p)
}

func TestTimeCourseApply(t *testing.T) {
	p := newTestPlate(t, 8, 12)
	d := TimeCourse{
		Treatment:         "Growth Factor",
		Times:             []string{"0h", "4h", "24h"},
		ReplicatesPerTime: 2,
		Gradient:          "blue_cyan",
	}
	wells := []string{"A1", "A2", "B1", "B2", "C1", "C2"}
	require.NoError(t, d.Apply(p, wells))

	w := p.Well("B1")
	assert.Equal(t, "Growth Factor", *w.Treatment)
	assert.Equal(t, "Growth Factor @ 4h", *w.Compound)
	assert.Equal(t, "4h", *w.TimePoint)
	assert.Equal(t, 1, *w.Replicate)
	assert.Equal(t, 2, *p.Well("B2").Replicate)

	// Wells of one time point share a color, different points differ.
	assert.Equal(t, p.Well("A1").Color, p.Well("A2").Color)
	assert.NotEqual(t, p.Well("A1").Color, p.Well("B1").Color)
}

func TestTimeCourseInsufficientWells(t *testing.T) {
	p := newTestPlate(t, 8, 12)
	d := TimeCourse{Treatment: "T", Times: []string{"0h", "4h"}, ReplicatesPerTime: 3}
	err := d.Apply(p, []string{"A1", "A2", "A3"})
	require.ErrorIs(t, err, ErrInsufficientWells)
	assert.Contains(t, err.Error(), "need 6")
	assertUntouched(t, p)
}

func TestCombinatorialCombinations(t *testing.T) {
	d := Combinatorial{Factors: []Factor{
		{Name: "A", Levels: []string{"x", "y"}},
		{Name: "B", Levels: []string{"p", "q"}},
	}}
	want := [][]string{{"x", "p"}, {"x", "q"}, {"y", "p"}, {"y", "q"}}
	assert.Equal(t, want, d.Combinations())
}

func TestCombinatorialApplyCyclesWithReplicates(t *testing.T) {
	p := newTestPlate(t, 8, 12)
	d := Combinatorial{Factors: []Factor{
		{Name: "A", Levels: []string{"x", "y"}},
		{Name: "B", Levels: []string{"p", "q"}},
	}}
	wells := []string{"A1", "A2", "A3", "A4", "A5", "A6"}
	require.NoError(t, d.Apply(p, wells, nil))

	wantCompound := []string{
		"A: x + B: p",
		"A: x + B: q",
		"A: y + B: p",
		"A: y + B: q",
		"A: x + B: p",
		"A: x + B: q",
	}
	for i, id := range wells {
		w := p.Well(id)
		assert.Equal(t, "Combination", *w.Treatment, "well %s", id)
		assert.Equal(t, wantCompound[i], *w.Compound, "well %s", id)
		wantRep := i/4 + 1
		assert.Equal(t, wantRep, *w.Replicate, "well %s", id)
	}
}

func TestCombinatorialRandomizeShufflesWellsOnly(t *testing.T) {
	d := Combinatorial{
		Factors: []Factor{
			{Name: "A", Levels: []string{"x", "y"}},
			{Name: "B", Levels: []string{"p", "q"}},
		},
		Randomize: true,
	}
	p := newTestPlate(t, 8, 12)
	wells := []string{"A1", "A2", "A3", "A4"}
	require.NoError(t, d.Apply(p, wells, rand.New(rand.NewSource(7))))

	// All four combinations land somewhere, exactly once each.
	seen := map[string]int{}
	for _, id := range wells {
		seen[*p.Well(id).Compound]++
		assert.Equal(t, 1, *p.Well(id).Replicate)
	}
	assert.Len(t, seen, 4)
	for compound, n := range seen {
		assert.Equal(t, 1, n, "compound %q", compound)
		assert.True(t, strings.HasPrefix(compound, "A: "), "compound %q", compound)
	}

	// Same seed, same layout.
	p2 := newTestPlate(t, 8, 12)
	require.NoError(t, d.Apply(p2, wells, rand.New(rand.NewSource(7))))
	for _, id := range wells {
		assert.Equal(t, *p.Well(id).Compound, *p2.Well(id).Compound, "well %s", id)
	}
}

func TestCombinatorialErrors(t *testing.T) {
	p := newTestPlate(t, 8, 12)

	one := Combinatorial{Factors: []Factor{{Name: "A", Levels: []string{"x"}}}}
	require.ErrorIs(t, one.Apply(p, []string{"A1"}, nil), ErrInvalidDesign)

	empty := Combinatorial{Factors: []Factor{
		{Name: "A", Levels: []string{"x"}},
		{Name: "B"},
	}}
	require.ErrorIs(t, empty.Apply(p, []string{"A1"}, nil), ErrInvalidDesign)

	ok := Combinatorial{Factors: []Factor{
		{Name: "A", Levels: []string{"x"}},
		{Name: "B", Levels: []string{"p"}},
	}}
	require.ErrorIs(t, ok.Apply(p, nil, nil), ErrInsufficientWells)
	assertUntouched(t, p)
}

func TestApplyMixture(t *testing.T) {
	p := newTestPlate(t, 8, 12)
	components := []wellplate.MixtureComponent{
		{Compound: "Drug A", Concentration: 10, Unit: "µM"},
		{Compound: "Drug B", Concentration: 0.5, Unit: "nM"},
	}
	require.NoError(t, ApplyMixture(p, []string{"A1", "B2"}, components))

	for _, id := range []string{"A1", "B2"} {
		w := p.Well(id)
		assert.Equal(t, "Mixture", *w.Treatment, "well %s", id)
		assert.Equal(t, "Drug A (10 µM) + Drug B (0.5 nM)", *w.Compound, "well %s", id)
		assert.Equal(t, components, w.Mixture, "well %s", id)
		assert.Equal(t, palette.MixtureColor, w.Color, "well %s", id)
	}
}

func TestApplyMixtureErrors(t *testing.T) {
	p := newTestPlate(t, 8, 12)
	require.ErrorIs(t, ApplyMixture(p, []string{"A1"}, nil), ErrInvalidDesign)
	require.ErrorIs(t, ApplyMixture(p, nil, []wellplate.MixtureComponent{{Compound: "X"}}), ErrInsufficientWells)
	assertUntouched(t, p)

	// Errors wrap the sentinel, not replace it.
	err := ApplyMixture(p, []string{"A1"}, nil)
	assert.True(t, errors.Is(err, ErrInvalidDesign))
}
