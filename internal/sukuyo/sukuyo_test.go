package sukuyo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/unsei/internal/ir"
)

func TestMansion_KnownValues(t *testing.T) {
	cases := []struct {
		lunar ir.LunarDate
		want  string
	}{
		{ir.LunarDate{LunarYear: 1979, LunarMonth: 10, LunarDay: 3}, "箕宿"},
		{ir.LunarDate{LunarYear: 1982, LunarMonth: 9, LunarDay: 21}, "柳宿"},
		{ir.LunarDate{LunarYear: 1999, LunarMonth: 11, LunarDay: 25}, "心宿"},
		{ir.LunarDate{LunarYear: 1988, LunarMonth: 1, LunarDay: 3}, "奎宿"},
		{ir.LunarDate{LunarYear: 2023, LunarMonth: 2, LunarDay: 1, IsLeapMonth: true}, "奎宿"},
		{ir.LunarDate{LunarYear: 2024, LunarMonth: 1, LunarDay: 1}, "室宿"},
	}
	for _, tc := range cases {
		got, err := Mansion(tc.lunar)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.lunar.String())
		assert.True(t, IsMansion(got))
	}
}

func TestMansion_FirstDayOfEachMonth(t *testing.T) {
	// 1/1 室, 2/1 奎, 3/1 胃, 4/1 畢, 5/1 参, 6/1 鬼,
	// 7/1 張, 8/1 軫, 9/1 氐, 10/1 心, 11/1 斗, 12/1 虚
	want := []string{"室", "奎", "胃", "畢", "参", "鬼", "張", "軫", "氐", "心", "斗", "虚"}
	for m := 1; m <= 12; m++ {
		got, err := Mansion(ir.LunarDate{LunarMonth: m, LunarDay: 1})
		require.NoError(t, err)
		assert.Equal(t, want[m-1]+Suffix, got, "month %d", m)
	}
}

func TestMansion_WrapsAroundTheCycle(t *testing.T) {
	// 3/1 is 胃 (26); 3/2 wraps to 昴.
	got, err := Mansion(ir.LunarDate{LunarMonth: 3, LunarDay: 2})
	require.NoError(t, err)
	assert.Equal(t, "昴宿", got)

	for day := 1; day <= 30; day++ {
		i, err := Index(ir.LunarDate{LunarMonth: 12, LunarDay: day})
		require.NoError(t, err)
		assert.True(t, i >= 0 && i < 27)
	}
}

func TestMansion_UnmappedMonth(t *testing.T) {
	for _, m := range []int{0, 13, -1} {
		_, err := Mansion(ir.LunarDate{LunarMonth: m, LunarDay: 1})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnmappedLunarMonth)
	}
	assert.False(t, IsMansion("不明"))
}
