package dashboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryForCode(t *testing.T) {
	cases := []struct {
		code int
		want ConditionCategory
	}{
		{0, CategoryClear},
		{1, CategoryMainlyClear},
		{2, CategoryPartlyCloudy},
		{3, CategoryOvercast},
		{45, CategoryFog},
		{48, CategoryFog},
		{51, CategoryDrizzle},
		{56, CategoryFreezingDrizzle},
		{61, CategoryRain},
		{65, CategoryRain},
		{66, CategoryFreezingRain},
		{71, CategorySnow},
		{77, CategorySnowGrains},
		{80, CategoryRainShowers},
		{85, CategorySnowShowers},
		{95, CategoryThunderstorm},
		{99, CategoryThunderstorm},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, CategoryForCode(tc.code), "code %d", tc.code)
	}
}

func TestCategoryForCodeUnknown(t *testing.T) {
	for _, code := range []int{-1, 4, 42, 50, 100, 9999} {
		require.Equal(t, CategoryUnknown, CategoryForCode(code), "code %d", code)
	}
}
