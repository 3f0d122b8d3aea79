package file

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// seededQuery loads the demo photo and document set into a fresh store.
func seededQuery(t *testing.T, s Store) *Query {
	t.Helper()
	ctx := context.Background()
	recs := []*FileRecord{
		testRecord(t, "p1", "IMG_2024_001.jpg", CategoryPhotos, day(2024, 10, 15)),
		testRecord(t, "p2", "IMG_2024_002.jpg", CategoryPhotos, day(2024, 10, 14)),
		testRecord(t, "p3", "IMG_2023_156.jpg", CategoryPhotos, day(2023, 12, 22)),
		testRecord(t, "p4", "IMG_2023_089.jpg", CategoryPhotos, day(2023, 6, 10)),
		testRecord(t, "p5", "IMG_2022_234.jpg", CategoryPhotos, day(2022, 5, 5)),
		testRecord(t, "d1", "Отчет_2024.pdf", CategoryDocuments, day(2024, 10, 20)),
		testRecord(t, "d2", "Договор.docx", CategoryDocuments, day(2024, 10, 18)),
		testRecord(t, "v1", "video_2024_summer.mp4", CategoryVideos, day(2024, 8, 10)),
	}
	for _, r := range recs {
		require.NoError(t, s.Put(ctx, r))
	}
	return NewQuery(s)
}

func intPtr(v int) *int { return &v }

func TestQuery_ListByCategory(t *testing.T) {
	q := seededQuery(t, NewMemoryStore())

	res, err := q.List(context.Background(), Filter{Category: CategoryPhotos})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, ids(res.Files))
	assert.Equal(t, 5, res.Count)
}

func TestQuery_YearFilter(t *testing.T) {
	q := seededQuery(t, NewMemoryStore())

	res, err := q.List(context.Background(), Filter{Category: CategoryPhotos, Year: intPtr(2023)})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p4"}, ids(res.Files))
	assert.Equal(t, 2, res.Count)

	res, err = q.List(context.Background(), Filter{Category: CategoryPhotos, Year: intPtr(1999)})
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Equal(t, 0, res.Count)
}

func TestQuery_SearchIsCaseInsensitive(t *testing.T) {
	q := seededQuery(t, NewMemoryStore())
	ctx := context.Background()

	res, err := q.List(ctx, Filter{Category: CategoryPhotos, Search: "img"})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Count)

	res, err = q.List(ctx, Filter{Category: CategoryPhotos, Search: "2023_1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, ids(res.Files))

	res, err = q.List(ctx, Filter{Category: CategoryDocuments, Search: "ОТЧЕТ"})
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, ids(res.Files))
}

func TestQuery_FiltersAreConjunctive(t *testing.T) {
	q := seededQuery(t, NewMemoryStore())
	ctx := context.Background()

	both, err := q.List(ctx, Filter{Category: CategoryPhotos, Year: intPtr(2024), Search: "002"})
	require.NoError(t, err)

	byYear, err := q.List(ctx, Filter{Category: CategoryPhotos, Year: intPtr(2024)})
	require.NoError(t, err)
	bySearch, err := q.List(ctx, Filter{Category: CategoryPhotos, Search: "002"})
	require.NoError(t, err)

	var intersection []string
	for _, a := range byYear.Files {
		for _, b := range bySearch.Files {
			if a.ID == b.ID {
				intersection = append(intersection, a.ID)
			}
		}
	}
	assert.Equal(t, intersection, ids(both.Files))
	assert.Equal(t, []string{"p2"}, ids(both.Files))
}

func TestQuery_CategoryIsExactAndCaseSensitive(t *testing.T) {
	q := seededQuery(t, NewMemoryStore())
	ctx := context.Background()

	for _, c := range []Category{"Photos", "all", "", "photo", "unknown"} {
		res, err := q.List(ctx, Filter{Category: c})
		require.NoError(t, err, "category %q", c)
		assert.NotNil(t, res.Files)
		assert.Empty(t, res.Files, "category %q", c)
		assert.Equal(t, 0, res.Count)
	}

	res, err := q.List(ctx, Filter{Category: CategoryMusic})
	require.NoError(t, err)
	assert.Empty(t, res.Files)
}

func TestQuery_WorksOverGormStore(t *testing.T) {
	q := seededQuery(t, NewGormStore(openTestDB(t)))

	res, err := q.List(context.Background(), Filter{Category: CategoryPhotos, Year: intPtr(2023), Search: "IMG"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p4"}, ids(res.Files))
}

func TestQuery_CategoryStats(t *testing.T) {
	q := seededQuery(t, NewMemoryStore())

	stats, err := q.CategoryStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, len(Categories))

	got := map[Category]int{}
	for i, s := range stats {
		assert.Equal(t, Categories[i], s.Category)
		got[s.Category] = s.Count
	}
	assert.Equal(t, 5, got[CategoryPhotos])
	assert.Equal(t, 2, got[CategoryDocuments])
	assert.Equal(t, 1, got[CategoryVideos])
	assert.Equal(t, 0, got[CategoryArchives])
}
