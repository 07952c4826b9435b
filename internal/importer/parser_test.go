package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFields(t *testing.T) {
	t.Run("plain fields", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, SplitFields("a,b,c"))
	})

	t.Run("quoted field keeps the comma", func(t *testing.T) {
		got := SplitFields(`"Miles, Davis",Kind of Blue,12000`)
		assert.Equal(t, []string{"Miles, Davis", "Kind of Blue", "12000"}, got)
	})

	t.Run("fields are trimmed", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b"}, SplitFields("  a ,\tb "))
	})

	t.Run("empty trailing field", func(t *testing.T) {
		assert.Equal(t, []string{"a", ""}, SplitFields("a,"))
	})

	t.Run("unterminated quote consumes the rest of the line", func(t *testing.T) {
		assert.Equal(t, []string{"a,b"}, SplitFields(`"a,b`))
	})
}

func TestLines(t *testing.T) {
	text := "title,artist\n\nAbbey Road,The Beatles\n   \nKind of Blue,Miles Davis\n"
	got := Lines(text)
	assert.Equal(t, []string{
		"title,artist",
		"Abbey Road,The Beatles",
		"Kind of Blue,Miles Davis",
	}, got)
}

func TestCanonicalKey(t *testing.T) {
	cases := map[string]string{
		"title":           "title",
		"Condition_Cover": "conditioncover",
		"  Precio ":       "precio",
		"category_id":     "categoryid",
		"is featured!":    "isfeatured",
		"123":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalKey(in), "input %q", in)
	}
}

func TestRowFirst(t *testing.T) {
	row := Row{"titulo": "Abbey Road", "artist": "", "artista": "The Beatles"}

	// English alias first, Spanish fallback
	assert.Equal(t, "Abbey Road", row.First("title", "titulo"))
	assert.Equal(t, "The Beatles", row.First("artist", "artista"))
	assert.Equal(t, "", row.First("price", "precio"))
}

func TestBuildRowMissingTrailingFields(t *testing.T) {
	row := buildRow([]string{"title", "artist", "price"}, []string{"Abbey Road"})
	assert.Equal(t, "Abbey Road", row["title"])
	assert.Equal(t, "", row["artist"])
	assert.Equal(t, "", row["price"])
}
