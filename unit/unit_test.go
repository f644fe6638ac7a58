// SPDX-License-Identifier: Unlicense OR MIT

package unit_test

import (
	"testing"

	"neomacs.dev/display/unit"
)

type fixedConverter float32

func (c fixedConverter) Px(v unit.Value) int {
	switch v.U {
	case unit.UnitPx:
		return int(v.V)
	default:
		return int(v.V * float32(c))
	}
}

func TestDpConstructor(t *testing.T) {
	v := unit.Dp(10)
	if v.V != 10 || v.U != unit.UnitDp {
		t.Errorf("Dp(10) = %+v, want {10 dp}", v)
	}
}

func TestPxConstructor(t *testing.T) {
	v := unit.Px(10)
	if v.V != 10 || v.U != unit.UnitPx {
		t.Errorf("Px(10) = %+v, want {10 px}", v)
	}
}

func TestConverterScalesDpToPx(t *testing.T) {
	var conv fixedConverter = 2
	if got := conv.Px(unit.Dp(10)); got != 20 {
		t.Errorf("Px(Dp(10)) with scale 2 = %d, want 20", got)
	}
	if got := conv.Px(unit.Px(10)); got != 10 {
		t.Errorf("Px(Px(10)) = %d, want 10 (already device pixels)", got)
	}
}
