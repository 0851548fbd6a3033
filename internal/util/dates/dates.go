package dates

import "time"

// The case registry stores calendar dates as "dd-MM-yyyy" while the
// administration UI edits them as ISO "yyyy-MM-dd". Conversions are
// tolerant: anything unparseable becomes an empty string instead of an
// error, so a corrupt stored date degrades to an empty input field.
const (
	StorageLayout = "02-01-2006"
	DisplayLayout = "2006-01-02"
)

func ToDisplayDate(storageDate string) string {
	if storageDate == "" {
		return ""
	}

	parsed, err := time.Parse(StorageLayout, storageDate)
	if err != nil {
		return ""
	}

	return parsed.Format(DisplayLayout)
}

func ToStorageDate(displayDate string) string {
	if displayDate == "" {
		return ""
	}

	parsed, err := time.Parse(DisplayLayout, displayDate)
	if err != nil {
		return ""
	}

	return parsed.Format(StorageLayout)
}

func IsValidStorageDate(storageDate string) bool {
	_, err := time.Parse(StorageLayout, storageDate)
	return err == nil
}
