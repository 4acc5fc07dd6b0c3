package chart

import (
	"errors"
	"testing"
	"time"
)

func row(ms int64, cells ...Cell) Row {
	return Row{Time: time.Duration(ms) * time.Millisecond, Cells: cells}
}

func TestValidateAcceptsWellFormedChart(t *testing.T) {
	c := &Chart{
		Keys: 4,
		Rows: []Row{
			row(0, Normal, Empty, Empty, Empty),
			row(100, Empty, HoldHead, Empty, Empty),
			row(200, Empty, HoldBody, Empty, Empty),
			row(300, Empty, HoldTail, Normal, Empty),
		},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsEmptyChart(t *testing.T) {
	c := &Chart{Keys: 4}
	if err := c.Validate(); !errors.Is(err, ErrEmptyChart) {
		t.Fatalf("Validate() = %v, want ErrEmptyChart", err)
	}
}

func TestValidateRejectsUnterminatedHold(t *testing.T) {
	c := &Chart{
		Keys: 4,
		Rows: []Row{
			row(0, HoldHead, Empty, Empty, Empty),
		},
	}
	if err := c.Validate(); !errors.Is(err, ErrUnterminatedHold) {
		t.Fatalf("Validate() = %v, want ErrUnterminatedHold", err)
	}
}

func TestValidateRejectsNonIncreasingTime(t *testing.T) {
	c := &Chart{
		Keys: 4,
		Rows: []Row{
			row(100, Normal, Empty, Empty, Empty),
			row(100, Empty, Normal, Empty, Empty),
		},
	}
	if err := c.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for non-increasing row times")
	}
}

func TestValidateRejectsWrongCellCount(t *testing.T) {
	c := &Chart{
		Keys: 4,
		Rows: []Row{
			row(0, Normal, Empty),
		},
	}
	if err := c.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for wrong cell count")
	}
}

func TestValidateRejectsKeysOutOfRange(t *testing.T) {
	c := &Chart{Keys: 2, Rows: []Row{row(0, Normal, Empty)}}
	if err := c.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for keys < 3")
	}
}

func TestDuration(t *testing.T) {
	c := &Chart{
		Keys: 4,
		Rows: []Row{
			row(0, Normal, Empty, Empty, Empty),
			row(500, Empty, Normal, Empty, Empty),
		},
	}
	if got, want := c.Duration(), 500*time.Millisecond; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
}

func TestKeyMaskDownUp(t *testing.T) {
	var prev KeyMask
	m := KeyMask(0b0101)
	if got, want := Down(prev, m), KeyMask(0b0101); got != want {
		t.Errorf("Down() = %b, want %b", got, want)
	}
	if got, want := Up(prev, m), KeyMask(0); got != want {
		t.Errorf("Up() = %b, want %b", got, want)
	}

	prev = m
	m = KeyMask(0b0001)
	if got, want := Up(prev, m), KeyMask(0b0100); got != want {
		t.Errorf("Up() = %b, want %b", got, want)
	}
}

func TestKeyMaskLanes(t *testing.T) {
	m := KeyMask(0b1010)
	got := m.Lanes(4)
	want := []int{1, 3}
	if len(got) != len(want) {
		t.Fatalf("Lanes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Lanes() = %v, want %v", got, want)
		}
	}
}
