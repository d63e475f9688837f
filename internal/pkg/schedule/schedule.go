package schedule

import (
	"io"
	"strings"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// Header is the first document of the schedule file.
// Known keys are normalized through the vocabulary, the rest lands in Extra.
type Header struct {
	FirstSection time.Time
	LastSection  time.Time // zero when the schedule is open ended
	Breaks       []time.Time
	Title        string
	ShortName    any // plain string or a map of contexts
	TimeSlot     string
	Template     string
	Extra        map[string]any
}

// Section is one following document joined with its generated time slot.
// Serial numbers the sections, Week counts calendar weeks, so a week
// landing on a break moves the two counters apart.
type Section struct {
	Date   time.Time
	Serial int
	Week   int
	Values map[string]any
	header *Header
}

// Parse reads the schedule. The first YAML document is the header,
// every following document describes one section. Documents after the
// last section date are ignored.
func Parse(content string) (*Header, []*Section, error) {
	decoder := yaml.NewDecoder(strings.NewReader(content))

	var headerDoc map[string]any
	if err := decoder.Decode(&headerDoc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("schedule file is empty")
		}
		return nil, nil, errors.PrefixError(err, "cannot parse schedule header")
	}
	header, err := newHeader(headerDoc)
	if err != nil {
		return nil, nil, err
	}

	var sections []*Section
	date, serial, week := header.FirstSection, 1, 1
	for {
		if !header.LastSection.IsZero() && date.After(header.LastSection) {
			break
		}
		var doc map[string]any
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, errors.PrefixErrorf(err, "cannot parse schedule section %d", len(sections)+1)
		}
		sections = append(sections, newSection(doc, header, date, serial, week))
		date, week = header.nextWeek(date, week)
		serial++
	}
	return header, sections, nil
}

func newHeader(doc map[string]any) (*Header, error) {
	header := &Header{Extra: make(map[string]any)}
	for key, value := range doc {
		switch normalized := NormalizeKey(key); normalized {
		case "first_section":
			date, err := toDate(value)
			if err != nil {
				return nil, errors.Errorf(`invalid "%s" in the schedule header: %w`, key, err)
			}
			header.FirstSection = date
		case "last_section":
			date, err := toDate(value)
			if err != nil {
				return nil, errors.Errorf(`invalid "%s" in the schedule header: %w`, key, err)
			}
			header.LastSection = date
		case "breaks":
			list, ok := value.([]any)
			if !ok {
				return nil, errors.Errorf(`invalid "%s" in the schedule header: not a list`, key)
			}
			for _, item := range list {
				date, err := toDate(item)
				if err != nil {
					return nil, errors.Errorf(`invalid "%s" in the schedule header: %w`, key, err)
				}
				header.Breaks = append(header.Breaks, date)
			}
		case "title":
			header.Title = cast.ToString(value)
		case "short_name":
			header.ShortName = value
		case "time_slot":
			header.TimeSlot = cast.ToString(value)
		case "template":
			header.Template = cast.ToString(value)
		default:
			header.Extra[normalized] = value
		}
	}
	if header.FirstSection.IsZero() {
		return nil, errors.New("schedule header has no first section date")
	}
	return header, nil
}

func newSection(doc map[string]any, header *Header, date time.Time, serial, week int) *Section {
	values := make(map[string]any, len(doc))
	for key, value := range doc {
		values[NormalizeKey(key)] = value
	}
	return &Section{Date: date, Serial: serial, Week: week, Values: values, header: header}
}

// Get returns the section value, the header is the fallback.
func (s *Section) Get(key string) any {
	if value, found := s.Values[NormalizeKey(key)]; found {
		return value
	}
	return s.header.Get(key)
}

// Get returns the header value of a normalized or Hungarian key.
func (h *Header) Get(key string) any {
	switch normalized := NormalizeKey(key); normalized {
	case "first_section":
		return h.FirstSection
	case "last_section":
		return h.LastSection
	case "breaks":
		return h.Breaks
	case "title":
		return h.Title
	case "short_name":
		return h.ShortName
	case "time_slot":
		return h.TimeSlot
	case "template":
		return h.Template
	default:
		return h.Extra[normalized]
	}
}

// nextWeek returns the slot one week later, weeks landing on a break are
// skipped. The week counter counts the skipped weeks too.
func (h *Header) nextWeek(date time.Time, week int) (time.Time, int) {
	for {
		date = date.AddDate(0, 0, 7)
		week++
		if !h.isBreak(date) {
			return date, week
		}
	}
}

func (h *Header) isBreak(date time.Time) bool {
	for _, b := range h.Breaks {
		if sameDate(b, date) {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func toDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, errors.Errorf(`"%s" is not a date`, v)
		}
		return date, nil
	default:
		return time.Time{}, errors.Errorf(`"%v" is not a date`, value)
	}
}
