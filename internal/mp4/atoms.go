package mp4

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Sorrow446/go-mp4tag"

	"github.com/simonhull/tagbridge/internal/canon"
	"github.com/simonhull/tagbridge/internal/keys"
	"github.com/simonhull/tagbridge/internal/multivalue"
	"github.com/simonhull/tagbridge/internal/types"
)

// stringAtom binds a property key to a single-string iTunes atom. del is
// the name go-mp4tag accepts in its delete list.
type stringAtom struct {
	key   string
	del   string
	field func(*mp4tag.MP4Tags) *string
}

var stringAtoms = []stringAtom{
	{keys.Title, "title", func(t *mp4tag.MP4Tags) *string { return &t.Title }},
	{keys.Artist, "artist", func(t *mp4tag.MP4Tags) *string { return &t.Artist }},
	{keys.Album, "album", func(t *mp4tag.MP4Tags) *string { return &t.Album }},
	{keys.AlbumArtist, "albumartist", func(t *mp4tag.MP4Tags) *string { return &t.AlbumArtist }},
	{keys.Comment, "comment", func(t *mp4tag.MP4Tags) *string { return &t.Comment }},
	{keys.Composer, "composer", func(t *mp4tag.MP4Tags) *string { return &t.Composer }},
	{keys.Lyrics, "lyrics", func(t *mp4tag.MP4Tags) *string { return &t.Lyrics }},
	{"COPYRIGHT", "copyright", func(t *mp4tag.MP4Tags) *string { return &t.Copyright }},
	{"LABEL", "publisher", func(t *mp4tag.MP4Tags) *string { return &t.Publisher }},
	{"ALBUMSORT", "albumsort", func(t *mp4tag.MP4Tags) *string { return &t.AlbumSort }},
	{"ALBUMARTISTSORT", "albumartistsort", func(t *mp4tag.MP4Tags) *string { return &t.AlbumArtistSort }},
	{"ARTISTSORT", "artistsort", func(t *mp4tag.MP4Tags) *string { return &t.ArtistSort }},
	{"TITLESORT", "titlesort", func(t *mp4tag.MP4Tags) *string { return &t.TitleSort }},
	{"COMPOSERSORT", "composersort", func(t *mp4tag.MP4Tags) *string { return &t.ComposerSort }},
}

// pairAtom binds a "N/TOTAL" property to a number/total atom pair.
type pairAtom struct {
	key    string
	del    []string
	number func(*mp4tag.MP4Tags) *int16
	total  func(*mp4tag.MP4Tags) *int16
}

var pairAtoms = []pairAtom{
	{
		key:    keys.TrackNumber,
		del:    []string{"tracknumber", "tracktotal"},
		number: func(t *mp4tag.MP4Tags) *int16 { return &t.TrackNumber },
		total:  func(t *mp4tag.MP4Tags) *int16 { return &t.TrackTotal },
	},
	{
		key:    keys.DiscNumber,
		del:    []string{"discnumber", "disctotal"},
		number: func(t *mp4tag.MP4Tags) *int16 { return &t.DiscNumber },
		total:  func(t *mp4tag.MP4Tags) *int16 { return &t.DiscTotal },
	},
}

const bpmKey = "BPM"

// atomKeys holds every key with a dedicated atom.
var atomKeys = func() map[string]bool {
	m := map[string]bool{bpmKey: true, keys.Genre: true, keys.Date: true}
	for _, a := range stringAtoms {
		m[a.key] = true
	}
	for _, a := range pairAtoms {
		m[a.key] = true
	}
	return m
}()

// toProperties translates iTunes atoms. Atoms hold one string, so values
// written as a "; " list come back as separate values. Free-form atoms
// follow the dedicated ones in name order.
//
// GENRE comes from the free-text genre atom, or from the numeric one when
// only that is present.
func toProperties(tags *mp4tag.MP4Tags) *types.PropertyMap {
	props := types.NewPropertyMap()
	for _, a := range stringAtoms {
		props.Set(a.key, multivalue.Split(*a.field(tags))...)
	}
	if tags.CustomGenre != "" {
		props.Set(keys.Genre, multivalue.Split(tags.CustomGenre)...)
	} else if name, ok := genreNames[tags.Genre]; ok {
		props.Set(keys.Genre, name)
	}
	switch {
	case tags.Date != "":
		props.Set(keys.Date, tags.Date)
	case tags.Year > 0:
		props.Set(keys.Date, strconv.Itoa(int(tags.Year)))
	}
	for _, a := range pairAtoms {
		props.Set(a.key, formatPair(*a.number(tags), *a.total(tags)))
	}
	if tags.BPM > 0 {
		props.Set(bpmKey, strconv.Itoa(int(tags.BPM)))
	}
	for _, name := range slices.Sorted(maps.Keys(tags.Custom)) {
		props.Append(keys.FromDescription(name), multivalue.Split(tags.Custom[name])...)
	}
	return props
}

// fromProperties builds the atoms for props and returns the keys that
// have no representation.
//
// go-mp4tag writes the date atom only as a year, so DATE keeps its
// leading year and a DATE without one is unsupported. GENRE is always
// written as free text.
func fromProperties(props *types.PropertyMap) (*mp4tag.MP4Tags, []string) {
	tags := &mp4tag.MP4Tags{Custom: make(map[string]string)}
	var unsupported []string

	for _, a := range stringAtoms {
		if values, ok := props.Get(a.key); ok {
			*a.field(tags) = multivalue.Join(values)
		}
	}
	if values, ok := props.Get(keys.Genre); ok {
		tags.CustomGenre = multivalue.Join(values)
	}
	if values, ok := props.Get(keys.Date); ok {
		year := canon.LeadingNumber(values[0])
		if year == 0 || year > math.MaxInt32 {
			unsupported = append(unsupported, keys.Date)
		} else {
			tags.Year = int32(year)
		}
	}
	for _, a := range pairAtoms {
		values, ok := props.Get(a.key)
		if !ok {
			continue
		}
		number, total, err := parsePair(values[0])
		if err != nil {
			unsupported = append(unsupported, a.key)
			continue
		}
		*a.number(tags), *a.total(tags) = number, total
	}
	if values, ok := props.Get(bpmKey); ok {
		bpm, err := strconv.ParseInt(values[0], 10, 16)
		if err != nil || bpm < 0 {
			unsupported = append(unsupported, bpmKey)
		} else {
			tags.BPM = int16(bpm)
		}
	}

	for key, values := range props.All() {
		if atomKeys[key] {
			continue
		}
		if !keys.Valid(key) {
			unsupported = append(unsupported, key)
			continue
		}
		tags.Custom[keys.ToDescription(key)] = multivalue.Join(values)
	}
	return tags, unsupported
}

// deletions lists the atoms present in before that after no longer sets.
// go-mp4tag only adds or replaces atoms on write, so removals must be
// named explicitly. Free-form atoms can only be dropped all at once, so
// removing one clears them all and after.Custom is written in full.
func deletions(before, after *mp4tag.MP4Tags) []string {
	var del []string
	for _, a := range stringAtoms {
		if *a.field(before) != "" && *a.field(after) == "" {
			del = append(del, a.del)
		}
	}
	if before.CustomGenre != "" && after.CustomGenre == "" {
		del = append(del, "customgenre")
	}
	// GENRE is written as free text, so a numeric genre is always stale.
	if before.Genre != mp4tag.GenreNone {
		del = append(del, "genre")
	}
	if (before.Date != "" || before.Year != 0) && after.Year == 0 {
		del = append(del, "date", "year")
	}
	for _, a := range pairAtoms {
		if *a.number(before) != 0 && *a.number(after) == 0 {
			del = append(del, a.del...)
		}
	}
	if before.BPM != 0 && after.BPM == 0 {
		del = append(del, "bpm")
	}
	for name := range before.Custom {
		if _, ok := after.Custom[name]; !ok {
			del = append(del, "allcustom")
			break
		}
	}
	return del
}

func formatPair(number, total int16) string {
	switch {
	case number <= 0:
		return ""
	case total <= 0:
		return strconv.Itoa(int(number))
	default:
		return fmt.Sprintf("%d/%d", number, total)
	}
}

func parsePair(s string) (number, total int16, err error) {
	n, t, hasTotal := strings.Cut(s, "/")
	num, err := strconv.ParseInt(strings.TrimSpace(n), 10, 16)
	if err != nil || num < 0 {
		return 0, 0, fmt.Errorf("invalid number %q", s)
	}
	if !hasTotal {
		return int16(num), 0, nil
	}
	tot, err := strconv.ParseInt(strings.TrimSpace(t), 10, 16)
	if err != nil || tot < 0 {
		return 0, 0, fmt.Errorf("invalid total %q", s)
	}
	return int16(num), int16(tot), nil
}
