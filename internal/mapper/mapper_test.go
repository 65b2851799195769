package mapper

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doublemix/msche-team-visit/internal/domain"
)

func TestField(t *testing.T) {
	row := Row{"Name": "  Alice  ", "Empty": ""}

	t.Run("exact match trims", func(t *testing.T) {
		value, err := Field(row, "Name")
		require.NoError(t, err)
		assert.Equal(t, "Alice", value)
	})

	t.Run("blank cell is empty string", func(t *testing.T) {
		value, err := Field(row, "Empty")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := Field(row, "Missing")
		var notFound *domain.FieldNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Missing", notFound.Selector)
		assert.True(t, domain.IsUserError(err))
	})
}

func TestFieldByPattern(t *testing.T) {
	t.Run("single match", func(t *testing.T) {
		row := Row{"Zoom Link Day 1": "Room A", "Date": "3/23/2025"}
		value, err := Eval(row, Match("^Zoom Link"))
		require.NoError(t, err)
		assert.Equal(t, "Room A", value)
	})

	t.Run("ambiguous match is never resolved arbitrarily", func(t *testing.T) {
		row := Row{"Zoom Link A": "x", "Zoom Link B": "y"}
		_, err := Eval(row, Match("^Zoom Link"))
		var ambiguous *domain.AmbiguousFieldError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, []string{"Zoom Link A", "Zoom Link B"}, ambiguous.Matches)
	})

	t.Run("zero matches", func(t *testing.T) {
		row := Row{"Date": "3/23/2025"}
		_, err := Eval(row, Match("^Zoom Link"))
		var notFound *domain.FieldNotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestEvalPipeline(t *testing.T) {
	upper := Transform(func(value any) (any, error) {
		return strings.ToUpper(value.(string)), nil
	})

	t.Run("stages run left to right", func(t *testing.T) {
		row := Row{"Name": "alice"}
		value, err := Eval(row, Pipeline{Column("Name"), upper})
		require.NoError(t, err)
		assert.Equal(t, "ALICE", value)
	})

	t.Run("selector failure aborts the pipeline", func(t *testing.T) {
		_, err := Eval(Row{}, Pipeline{Column("Name"), upper})
		var notFound *domain.FieldNotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestEvalObject(t *testing.T) {
	spec := Object{
		"first": Column("First Name"),
		"last":  Column("Last Name"),
		"full": Computed(func(rec Record) (any, error) {
			return rec["first"].(string) + " " + rec["last"].(string), nil
		}),
	}
	row := Row{"First Name": "Alice", "Last Name": "Smith"}

	t.Run("computed fields see base fields", func(t *testing.T) {
		rec, err := Eval(row, spec)
		require.NoError(t, err)
		assert.Equal(t, Record{"first": "Alice", "last": "Smith", "full": "Alice Smith"}, rec)
	})

	t.Run("computed fields evaluate in name order", func(t *testing.T) {
		chained := Object{
			"base": Column("First Name"),
			"a": Computed(func(rec Record) (any, error) {
				return rec["base"].(string) + "!", nil
			}),
			"b": Computed(func(rec Record) (any, error) {
				// "a" sorts first, so it is already present.
				return rec["a"].(string) + "?", nil
			}),
		}
		value, err := Eval(row, chained)
		require.NoError(t, err)
		rec, ok := value.(Record)
		require.True(t, ok)
		assert.Equal(t, "Alice!?", rec["b"])
	})

	t.Run("mapping is idempotent", func(t *testing.T) {
		first, err := Eval(row, spec)
		require.NoError(t, err)
		second, err := Eval(row, spec)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestSplice(t *testing.T) {
	timeSpec := FromRow(func(row Row) (any, error) {
		return Record{"time": row["Time"], "slot": "morning"}, nil
	})

	t.Run("sub-record fields merge into the parent", func(t *testing.T) {
		rec, err := Eval(Row{"Time": "9:00 a.m.", "Date": "Monday"}, Object{
			"$time": timeSpec,
			"date":  Column("Date"),
		})
		require.NoError(t, err)
		assert.Equal(t, Record{"time": "9:00 a.m.", "slot": "morning", "date": "Monday"}, rec)
	})

	t.Run("collision with a spliced field is an error", func(t *testing.T) {
		_, err := Eval(Row{"Time": "9:00 a.m."}, Object{
			"$time": timeSpec,
			"time":  Column("Time"),
		})
		require.Error(t, err)
		assert.False(t, domain.IsUserError(err))
	})

	t.Run("non-record splice value is an error", func(t *testing.T) {
		_, err := Eval(Row{"Time": "9:00 a.m."}, Object{
			"$time": Column("Time"),
		})
		require.Error(t, err)
	})
}

func TestMapRows(t *testing.T) {
	spec := Object{"name": Column("Name")}

	t.Run("maps every row", func(t *testing.T) {
		records, err := MapRows([]Row{{"Name": "a"}, {"Name": "b"}}, spec)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "b", records[1]["name"])
	})

	t.Run("any failure aborts the whole batch", func(t *testing.T) {
		records, err := MapRows([]Row{{"Name": "a"}, {"Other": "b"}}, spec)
		assert.Nil(t, records)

		var mapErr *domain.MappingError
		require.ErrorAs(t, err, &mapErr)
		assert.Equal(t, 1, mapErr.Row)
		assert.Equal(t, "Name", mapErr.Field)
		assert.True(t, errors.Is(err, domain.ErrUserData))
	})
}

func TestRecordAs(t *testing.T) {
	rec := Record{"count": 3, "name": "x"}

	count, err := As[int](rec, "count")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = As[string](rec, "count")
	assert.Error(t, err)

	_, err = As[int](rec, "missing")
	assert.Error(t, err)
}
