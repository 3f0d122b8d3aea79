package file

import "time"

type Category string

const (
	CategoryPhotos    Category = "photos"
	CategoryVideos    Category = "videos"
	CategoryDocuments Category = "documents"
	CategoryMovies    Category = "movies"
	CategoryWork      Category = "work"
	CategorySoftware  Category = "software"
	CategoryMusic     Category = "music"
	CategoryArchives  Category = "archives"
)

// Categories lists every recognized category in display order.
var Categories = []Category{
	CategoryPhotos,
	CategoryVideos,
	CategoryDocuments,
	CategoryMovies,
	CategoryWork,
	CategorySoftware,
	CategoryMusic,
	CategoryArchives,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// FileRecord is the metadata of one catalogued file.
// Records are immutable once stored; the only mutation is deletion.
type FileRecord struct {
	Seq       int64     `gorm:"column:seq;primaryKey;autoIncrement" json:"-"`
	ID        string    `gorm:"column:id;type:varchar(64);uniqueIndex;not null" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Category  Category  `gorm:"column:category;type:varchar(32);index;not null" json:"category"`
	SizeBytes int64     `gorm:"column:size_bytes;not null" json:"size_bytes"`
	Checksum  string    `gorm:"column:checksum;type:varchar(64)" json:"checksum,omitempty"`
	Year      int       `gorm:"column:year;index" json:"year"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
}

func (FileRecord) TableName() string { return "file_records" }

// YearOf returns the calendar year a record created at t belongs to.
func YearOf(t time.Time) int {
	return t.UTC().Year()
}
