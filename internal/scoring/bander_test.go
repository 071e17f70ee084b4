package scoring

import "testing"

func TestBand(t *testing.T) {
	tests := []struct {
		percentage int
		wantPct    int
	}{
		{100, 100},
		{90, 100},
		{89, 60},
		{80, 60},
		{79, 50},
		{70, 50},
		{69, 40},
		{50, 40},
		{49, 25},
		{35, 25},
		{34, 15},
		{1, 15},
		{0, 15},
	}
	for _, tt := range tests {
		s := Band(tt.percentage)
		if s.Percentage != tt.wantPct {
			t.Errorf("Band(%d).Percentage = %d, want %d", tt.percentage, s.Percentage, tt.wantPct)
		}
		wantAmount := BaseFee * tt.wantPct / 100
		if s.Amount != wantAmount {
			t.Errorf("Band(%d).Amount = %d, want %d", tt.percentage, s.Amount, wantAmount)
		}
		if s.FinalFee != BaseFee-wantAmount {
			t.Errorf("Band(%d).FinalFee = %d, want %d", tt.percentage, s.FinalFee, BaseFee-wantAmount)
		}
		if s.OriginalFee != BaseFee {
			t.Errorf("Band(%d).OriginalFee = %d, want %d", tt.percentage, s.OriginalFee, BaseFee)
		}
	}
}

// 分数越高,奖学金比例不应降低
func TestBandMonotonic(t *testing.T) {
	prev := Band(0).Percentage
	for pct := 1; pct <= 100; pct++ {
		cur := Band(pct).Percentage
		if cur < prev {
			t.Fatalf("Band(%d) = %d%% < Band(%d) = %d%%", pct, cur, pct-1, prev)
		}
		prev = cur
	}
}

// 任何分数都不应得到零奖学金
func TestBandNeverZero(t *testing.T) {
	for _, pct := range []int{0, 1, 10, 34} {
		if s := Band(pct); s.Percentage == 0 || s.Amount == 0 {
			t.Errorf("Band(%d) = %+v, want non-zero scholarship", pct, s)
		}
	}
}
