package catalog

import "fmt"

// FacetKind selects the match rule the filter engine applies to a facet.
type FacetKind string

const (
	FacetString FacetKind = "string"
	FacetBool   FacetKind = "bool"
)

// Option is one selectable value of a facet. Value is the canonical token
// stored in the database; Label is the display string.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Facet is one filterable dimension of a category. Key names a record field,
// Icon is an opaque display hint resolved by the client.
type Facet struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Icon    string    `json:"icon,omitempty"`
	Kind    FacetKind `json:"kind"`
	Options []Option  `json:"options"`
}

// HasOption reports whether value is one of the facet's option tokens.
func (f *Facet) HasOption(value string) bool {
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// kazakhstanCities is shared by every category's city facet. The registry is
// read-only after init; none of the slices handed out below may be mutated.
var kazakhstanCities = []Option{
	{Value: "almaty", Label: "Алматы"},
	{Value: "astana", Label: "Астана"},
	{Value: "shymkent", Label: "Шымкент"},
	{Value: "aktobe", Label: "Актобе"},
	{Value: "karaganda", Label: "Караганда"},
	{Value: "taraz", Label: "Тараз"},
	{Value: "pavlodar", Label: "Павлодар"},
	{Value: "ust-kamenogorsk", Label: "Усть-Каменогорск"},
	{Value: "semey", Label: "Семей"},
	{Value: "aktau", Label: "Актау"},
	{Value: "kostanay", Label: "Костанай"},
	{Value: "kyzylorda", Label: "Кызылорда"},
	{Value: "atyrau", Label: "Атырау"},
	{Value: "petropavlovsk", Label: "Петропавловск"},
	{Value: "oral", Label: "Уральск"},
}

var formatOptions = []Option{
	{Value: "online", Label: "Онлайн"},
	{Value: "offline", Label: "Офлайн"},
	{Value: "hybrid", Label: "Гибридный"},
}

var facetsByCategory = map[Category][]Facet{
	CategoryOlympiads: {
		{
			Key:   "subject",
			Label: "Предмет",
			Icon:  "book",
			Kind:  FacetString,
			Options: []Option{
				{Value: "math", Label: "Математика"},
				{Value: "physics", Label: "Физика"},
				{Value: "chemistry", Label: "Химия"},
				{Value: "biology", Label: "Биология"},
				{Value: "informatics", Label: "Информатика"},
				{Value: "kazakh", Label: "Казахский язык"},
				{Value: "russian", Label: "Русский язык"},
				{Value: "english", Label: "Английский язык"},
				{Value: "history", Label: "История"},
				{Value: "geography", Label: "География"},
			},
		},
		{
			Key:   "level",
			Label: "Уровень",
			Icon:  "trophy",
			Kind:  FacetString,
			Options: []Option{
				{Value: "school", Label: "Школьный"},
				{Value: "regional", Label: "Региональный"},
				{Value: "national", Label: "Республиканский"},
				{Value: "international", Label: "Международный"},
			},
		},
		{Key: "format", Label: "Формат", Icon: "monitor", Kind: FacetString, Options: formatOptions},
		{Key: "city", Label: "Город", Icon: "map-pin", Kind: FacetString, Options: kazakhstanCities},
		{
			Key:   "grant_available",
			Label: "Грант",
			Icon:  "wallet",
			Kind:  FacetBool,
			Options: []Option{
				{Value: "true", Label: "Есть грант"},
				{Value: "false", Label: "Без гранта"},
			},
		},
	},
	CategoryCompetitions: {
		{
			Key:   "type",
			Label: "Тип",
			Icon:  "zap",
			Kind:  FacetString,
			Options: []Option{
				{Value: "hackathon", Label: "Хакатон"},
				{Value: "case-competition", Label: "Кейс-чемпионат"},
				{Value: "startup", Label: "Стартап"},
				{Value: "creative", Label: "Творческий"},
				{Value: "sports", Label: "Спортивный"},
				{Value: "science", Label: "Научный"},
			},
		},
		{Key: "format", Label: "Формат", Icon: "monitor", Kind: FacetString, Options: formatOptions},
		{Key: "city", Label: "Город", Icon: "map-pin", Kind: FacetString, Options: kazakhstanCities},
		{
			Key:   "grant_available",
			Label: "Призовой фонд",
			Icon:  "wallet",
			Kind:  FacetBool,
			Options: []Option{
				{Value: "true", Label: "Есть призовой фонд"},
				{Value: "false", Label: "Без призового фонда"},
			},
		},
	},
	CategoryVolunteering: {
		{
			Key:   "cause",
			Label: "Направление",
			Icon:  "heart",
			Kind:  FacetString,
			Options: []Option{
				{Value: "education", Label: "Образование"},
				{Value: "environment", Label: "Экология"},
				{Value: "social", Label: "Социальное"},
				{Value: "health", Label: "Здравоохранение"},
				{Value: "culture", Label: "Культура"},
				{Value: "animals", Label: "Животные"},
			},
		},
		{
			Key:   "duration",
			Label: "Длительность",
			Icon:  "clock",
			Kind:  FacetString,
			Options: []Option{
				{Value: "short", Label: "До 1 месяца"},
				{Value: "medium", Label: "1-3 месяца"},
				{Value: "long", Label: "3+ месяцев"},
			},
		},
		{Key: "format", Label: "Формат", Icon: "monitor", Kind: FacetString, Options: formatOptions},
		{Key: "city", Label: "Город", Icon: "map-pin", Kind: FacetString, Options: kazakhstanCities},
	},
	CategoryUniversities: {
		{Key: "city", Label: "Город", Icon: "map-pin", Kind: FacetString, Options: kazakhstanCities},
		{
			Key:   "ranking",
			Label: "Рейтинг",
			Icon:  "graduation-cap",
			Kind:  FacetString,
			Options: []Option{
				{Value: "top10", Label: "Топ-10"},
				{Value: "top20", Label: "Топ-20"},
				{Value: "top50", Label: "Топ-50"},
			},
		},
		{
			Key:   "tuition_type",
			Label: "Форма обучения",
			Icon:  "clipboard",
			Kind:  FacetString,
			Options: []Option{
				{Value: "full-time", Label: "Очное"},
				{Value: "part-time", Label: "Заочное"},
				{Value: "online", Label: "Онлайн"},
			},
		},
		{
			Key:   "grant_available",
			Label: "Грант",
			Icon:  "wallet",
			Kind:  FacetBool,
			Options: []Option{
				{Value: "true", Label: "Есть гранты"},
				{Value: "false", Label: "Без грантов"},
			},
		},
	},
}

// FacetsFor returns the ordered facet schema for a category. Callers validate
// input with ParseCategory first; an unknown category here is a programming
// error, so FacetsFor panics rather than returning an error.
func FacetsFor(c Category) []Facet {
	facets, ok := facetsByCategory[c]
	if !ok {
		panic(fmt.Sprintf("catalog: no facet schema for category %q", c))
	}
	return facets
}

// FacetFor returns the facet with the given key in a category's schema.
func FacetFor(c Category, key string) (*Facet, bool) {
	facets := FacetsFor(c)
	for i := range facets {
		if facets[i].Key == key {
			return &facets[i], true
		}
	}
	return nil, false
}
