package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify_FoldsDiacriticsAndCollapsesSeparators(t *testing.T) {
	cases := map[string]string{
		"Hello World":       "hello-world",
		"Yaşam & Öğrenme":   "yasam-ogrenme",
		"  --Crème brûlée ": "creme-brulee",
		"Straße/Øst":        "strasse-ost",
		"":                  "",
		"___":               "",
	}
	for input, want := range cases {
		require.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestEscapeXML_EscapesAllFiveSpecials(t *testing.T) {
	require.Equal(t, "a &amp;&lt;&gt;&quot;&apos; z", EscapeXML(`a &<>"' z`))
}

func TestParseDate_AcceptsCommonShapes(t *testing.T) {
	for _, v := range []string{"2024-06-01", "2024-06-01T10:30:00Z", "2024/06/01"} {
		_, ok := ParseDate(v)
		require.True(t, ok, "value %q", v)
	}

	_, ok := ParseDate("not a date")
	require.False(t, ok)
	require.EqualValues(t, 0, SortTime("not a date"))
}

func TestLastMod_OmitsUnparseable(t *testing.T) {
	require.Equal(t, "2024-01-01", LastMod("2024-01-01"))
	require.Empty(t, LastMod("soon"))
	require.Empty(t, LastMod(""))
}

func TestBoolean_HandlesStringForms(t *testing.T) {
	require.True(t, Boolean(true))
	require.True(t, Boolean("true"))
	require.False(t, Boolean("false"))
	require.False(t, Boolean(nil))
	require.False(t, Boolean(""))
}

func TestOrder_NonNumericSortsLast(t *testing.T) {
	require.Equal(t, 3, Order(3))
	require.Equal(t, 7, Order("7"))
	require.Equal(t, OrderMax, Order(nil))
	require.Equal(t, OrderMax, Order("first"))
}

func TestReadingTime_RoundsAndClamps(t *testing.T) {
	require.Equal(t, 4, ReadingTime(3.6))
	require.Equal(t, 5, ReadingTime("5"))
	require.Equal(t, 0, ReadingTime(-2))
	require.Equal(t, 0, ReadingTime("n/a"))
}

func TestNormalizeStringArray_TrimsAndDropsEmpties(t *testing.T) {
	require.Equal(t, []string{"go", "web"}, NormalizeStringArray([]any{" go ", "", "web"}))
	require.Equal(t, []string{"a", "b"}, NormalizeStringArray("a, b"))
	require.Nil(t, NormalizeStringArray(42))
}
