package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	t.Run("marshals as calendar date", func(t *testing.T) {
		out, err := json.Marshal(struct {
			PublishedOn Date `json:"publishedOn"`
		}{NewDate(2022, time.March, 7)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"publishedOn":"2022-03-07"}`, string(out))
	})

	t.Run("null leaves the value untouched", func(t *testing.T) {
		d := NewDate(2020, time.January, 1)
		require.NoError(t, json.Unmarshal([]byte("null"), &d))
		assert.Equal(t, "2020-01-01", d.String())
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"07/03/2022"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`20220307`), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("pointer stays nil for null", func(t *testing.T) {
		var payload struct {
			PublishedOn *Date `json:"publishedOn"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"publishedOn":null}`), &payload))
		assert.Nil(t, payload.PublishedOn)

		require.NoError(t, json.Unmarshal([]byte(`{"publishedOn":"2023-12-31"}`), &payload))
		require.NotNil(t, payload.PublishedOn)
		assert.True(t, payload.PublishedOn.Equal(NewDate(2023, time.December, 31)))
	})
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Time().Year())
	assert.Equal(t, time.February, d.Time().Month())

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
}

func TestDateValueAndScan(t *testing.T) {
	value, err := NewDate(2021, time.June, 15).Value()
	require.NoError(t, err)

	var scanned Date
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, "2021-06-15", scanned.String())
	assert.Equal(t, "date", Date{}.GormDataType())
}

func TestGetModelFields(t *testing.T) {
	assert.Equal(t, []string{"id", "blog_title", "description"}, getModelFields(Blog{}))
	assert.Equal(t,
		[]string{"id", "blog_id", "post_title", "post_body", "post_conclusion", "author", "published_on"},
		getModelFields(Post{}),
	)
}

func TestFindColumnMismatches(t *testing.T) {
	dbColumns := []string{"id", "blog_title", "description", "legacy_slug"}
	assert.Equal(t, []string{"legacy_slug"}, findColumnMismatches(dbColumns, getModelFields(Blog{})))
	assert.Empty(t, findColumnMismatches(dbColumns[:3], getModelFields(Blog{})))
}

func TestSortableColumnsMatchModel(t *testing.T) {
	columns := map[string]bool{}
	for _, column := range getModelFields(Post{}) {
		columns[column] = true
	}
	for property, column := range SortableColumns {
		assert.True(t, columns[column], "%s maps to unknown column %s", property, column)
	}
	_, blogSortable := SortableColumns["blogId"]
	assert.False(t, blogSortable)
}
