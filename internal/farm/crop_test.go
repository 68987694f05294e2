package farm

import "testing"

func TestWheatGrowth(t *testing.T) {
	// 1.7 stages per day: 1, 3, 5 (capped)
	tests := []struct {
		days     int
		stage    int
		grown    bool
		yieldNow int
	}{
		{0, 0, false, 1},
		{1, 1, false, 1},
		{2, 3, false, 1},
		{3, 5, true, 3},
		{10, 5, true, 3},
	}

	for _, tc := range tests {
		c := NewCrop(DefaultCropSpec(CropWheat))
		for i := 0; i < tc.days; i++ {
			c.Advance()
		}
		if c.Stage() != tc.stage {
			t.Errorf("after %d days Stage() = %d, expected %d", tc.days, c.Stage(), tc.stage)
		}
		if c.IsFullyGrown() != tc.grown {
			t.Errorf("after %d days IsFullyGrown() = %v, expected %v", tc.days, c.IsFullyGrown(), tc.grown)
		}
		if c.HarvestYield() != tc.yieldNow {
			t.Errorf("after %d days HarvestYield() = %d, expected %d", tc.days, c.HarvestYield(), tc.yieldNow)
		}
	}
}

func TestTomatoGrowth(t *testing.T) {
	c := NewCrop(DefaultCropSpec(CropTomato))
	for day := 1; day <= 5; day++ {
		c.Advance()
		if c.Stage() != day {
			t.Errorf("day %d Stage() = %d, expected %d", day, c.Stage(), day)
		}
	}
	if !c.IsFullyGrown() {
		t.Error("Tomato should be fully grown after 5 days")
	}
	if c.HarvestYield() != 2 {
		t.Errorf("HarvestYield() = %d, expected 2", c.HarvestYield())
	}
}

func TestGrowthMonotonic(t *testing.T) {
	rates := []float64{0, 0.3, 0.5, 1, 1.7, 2.5, 7}

	for _, rate := range rates {
		c := NewCrop(CropSpec{Kind: CropWheat, MaxStage: 5, DailyGrowth: rate})
		prev := c.Stage()
		for day := 0; day < 30; day++ {
			c.Advance()
			if c.Stage() < prev {
				t.Errorf("rate %.1f day %d: stage decreased %d -> %d", rate, day, prev, c.Stage())
			}
			if c.Stage() > c.MaxStage() {
				t.Errorf("rate %.1f day %d: stage %d exceeds max %d", rate, day, c.Stage(), c.MaxStage())
			}
			if c.Progress() < 0 || c.Progress() >= 1 {
				t.Errorf("rate %.1f day %d: progress %f outside [0,1)", rate, day, c.Progress())
			}
			prev = c.Stage()
		}
	}
}

func TestCropNames(t *testing.T) {
	c := NewCrop(DefaultCropSpec(CropWheat))
	if c.ItemName() != "wheat" {
		t.Errorf("ItemName() = %q, expected %q", c.ItemName(), "wheat")
	}
	if c.SpriteKey() != "crops/wheat_stage_5" {
		t.Errorf("SpriteKey() = %q, expected %q", c.SpriteKey(), "crops/wheat_stage_5")
	}
}

func TestParseCropKind(t *testing.T) {
	if k, err := ParseCropKind("Tomato"); err != nil || k != CropTomato {
		t.Errorf("ParseCropKind(Tomato) = %v, %v", k, err)
	}
	if _, err := ParseCropKind("potato"); err == nil {
		t.Error("ParseCropKind(potato) should fail")
	}
}
